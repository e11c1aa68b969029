package errors

import "net/http"

// Not found: ссылка на несуществующую сущность
var (
	ErrZoneNotFound = New(
		"ZONE_NOT_FOUND",
		"Geofence zone not found",
		http.StatusNotFound,
	)

	ErrTouristNotFound = New(
		"TOURIST_NOT_FOUND",
		"Tourist not found",
		http.StatusNotFound,
	)

	ErrAlertNotFound = New(
		"ALERT_NOT_FOUND",
		"Alert not found",
		http.StatusNotFound,
	)

	ErrResponseNotFound = New(
		"RESPONSE_NOT_FOUND",
		"Emergency response index out of range",
		http.StatusNotFound,
	)

	ErrIncidentNotFound = New(
		"INCIDENT_NOT_FOUND",
		"Incident not found",
		http.StatusNotFound,
	)

	ErrIdentityNotFound = New(
		"IDENTITY_NOT_FOUND",
		"Digital identity not found",
		http.StatusNotFound,
	)

	ErrCredentialNotFound = New(
		"CREDENTIAL_NOT_FOUND",
		"Credential not found",
		http.StatusNotFound,
	)
)

// Unauthorized: проверка роли не прошла
var (
	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Actor does not hold the required role",
		http.StatusForbidden,
	)

	ErrNotResponseOwner = New(
		"NOT_RESPONSE_OWNER",
		"Only the dispatching responder may update this response",
		http.StatusForbidden,
	)
)

// Invalid state: операция недопустима из текущего состояния жизненного цикла
var (
	ErrAlertAlreadyResolved = New(
		"ALERT_ALREADY_RESOLVED",
		"Alert is already resolved",
		http.StatusConflict,
	)

	ErrInvalidAlertState = New(
		"INVALID_ALERT_STATE",
		"Alert lifecycle does not permit this transition",
		http.StatusConflict,
	)

	ErrInvalidIncidentState = New(
		"INVALID_INCIDENT_STATE",
		"Incident lifecycle does not permit this transition",
		http.StatusConflict,
	)
)

// Precondition failed: вход нужно исправить и повторить
var (
	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Zone radius must be positive",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrIdentityRequired = New(
		"IDENTITY_REQUIRED",
		"Reporter has no active digital identity",
		http.StatusUnprocessableEntity,
	)

	ErrNoActiveIdentity = New(
		"NO_ACTIVE_IDENTITY",
		"Actor has no active digital identity",
		http.StatusUnprocessableEntity,
	)

	ErrIdentityAlreadyActive = New(
		"IDENTITY_ALREADY_ACTIVE",
		"Actor already has an active digital identity",
		http.StatusUnprocessableEntity,
	)

	ErrDuplicatePassport = New(
		"DUPLICATE_PASSPORT",
		"A tourist with this passport is already registered",
		http.StatusUnprocessableEntity,
	)

	ErrDuplicateCredential = New(
		"DUPLICATE_CREDENTIAL",
		"Identical credential already issued at this timestamp",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)
)

// Infrastructure
var (
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

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
