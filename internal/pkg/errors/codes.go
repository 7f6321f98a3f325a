package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidResolution = New(
		"INVALID_RESOLUTION",
		"Invalid grid resolution",
		http.StatusBadRequest,
	)

	ErrInvalidEnvironment = New(
		"INVALID_ENVIRONMENT",
		"Invalid environment class",
		http.StatusBadRequest,
	)

	ErrInvalidFrequency = New(
		"INVALID_FREQUENCY",
		"Invalid carrier frequency",
		http.StatusBadRequest,
	)

	ErrSiteNotFound = New(
		"SITE_NOT_FOUND",
		"Site not found",
		http.StatusNotFound,
	)

	ErrInvalidSiteID = New(
		"INVALID_SITE_ID",
		"Invalid site ID",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
