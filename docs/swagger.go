// Package docs Coverage Microservice API.
//
// Microservice for radio coverage estimation around LTE transmitter sites.
// Computes RSRP heatmaps over a directional grid using terrain elevation,
// knife-edge diffraction and the COST-231 Hata propagation model.
//
// Main capabilities:
// - RSRP coverage grids for ad-hoc site and propagation parameters
// - Registry of transmitter sites with stored radio configuration
// - Coverage computation for registered sites
// - Terrain elevation acquisition with batching, retries and caching
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
