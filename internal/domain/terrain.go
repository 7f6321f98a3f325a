package domain

// TerrainCache holds terrain elevations for one coverage computation.
// Each request gets its own instance, so concurrent computations never
// see each other's terrain data. Not safe for concurrent writers.
type TerrainCache struct {
	elevations map[TerrainKey]float64
}

// NewTerrainCache creates an empty cache sized for the expected grid.
func NewTerrainCache(capacity int) *TerrainCache {
	return &TerrainCache{
		elevations: make(map[TerrainKey]float64, capacity),
	}
}

// Get returns the cached elevation for the point and whether it is present.
func (c *TerrainCache) Get(p GeoPoint) (float64, bool) {
	elev, ok := c.elevations[p.Key()]
	return elev, ok
}

// GetOrDefault returns the cached elevation or 0 m when the point is unknown.
func (c *TerrainCache) GetOrDefault(p GeoPoint) float64 {
	return c.elevations[p.Key()]
}

// Set stores an elevation. The first value for a key wins: once a sample
// is present it is never overwritten within the same request.
func (c *TerrainCache) Set(p GeoPoint, elevation float64) {
	key := p.Key()
	if _, ok := c.elevations[key]; ok {
		return
	}
	c.elevations[key] = elevation
}

// Len returns the number of cached samples.
func (c *TerrainCache) Len() int {
	return len(c.elevations)
}
