package errors

import "net/http"

var (
	// ErrInvalidCoordinate - координата вне допустимого диапазона или не конечна
	ErrInvalidCoordinate = New(
		"INVALID_COORDINATE",
		"Coordinate is not finite or out of valid range",
		http.StatusBadRequest,
	)

	// ErrInvalidBufferWidth - неположительная полуширина буферного коридора
	ErrInvalidBufferWidth = New(
		"INVALID_BUFFER_WIDTH",
		"Buffer half-width must be positive",
		http.StatusBadRequest,
	)

	// ErrDegenerateInput - меньше двух различных точек для построения прямой
	ErrDegenerateInput = New(
		"DEGENERATE_INPUT",
		"Cannot fit a section line: select at least two distinct points",
		http.StatusBadRequest,
	)

	// ErrTransformFailure - сбой координатной математики (неподдерживаемая пара систем и т.п.)
	ErrTransformFailure = New(
		"TRANSFORM_FAILURE",
		"Coordinate transformation failed",
		http.StatusUnprocessableEntity,
	)

	ErrBoreholeNotFound = New(
		"BOREHOLE_NOT_FOUND",
		"Borehole not found",
		http.StatusNotFound,
	)

	ErrInvalidShape = New(
		"INVALID_SHAPE",
		"Invalid selection shape descriptor",
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
