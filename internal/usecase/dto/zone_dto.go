package dto

// CreateZoneRequest - запрос на создание геозоны
type CreateZoneRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Lat         float64 `json:"lat" validate:"min=-90,max=90"`
	Lon         float64 `json:"lon" validate:"min=-180,max=180"`
	RadiusM     int64   `json:"radius_m"`
	Type        string  `json:"type" validate:"required"`
}

// UpdateZoneRequest - полная замена изменяемых полей зоны
type UpdateZoneRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Lat         float64 `json:"lat" validate:"min=-90,max=90"`
	Lon         float64 `json:"lon" validate:"min=-180,max=180"`
	RadiusM     int64   `json:"radius_m"`
	Type        string  `json:"type" validate:"required"`
}

// SetZoneActiveRequest - включение/выключение зоны
type SetZoneActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}
