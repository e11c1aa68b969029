package dto

import "time"

// RegisterTouristRequest - запрос на регистрацию туриста
type RegisterTouristRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	PassportHash string `json:"passport_hash" validate:"required,min=8,max=128"`
	Nationality  string `json:"nationality" validate:"max=100"`
	Phone        string `json:"phone" validate:"max=32"`
}

// RecordLocationRequest - новая позиция туриста
type RecordLocationRequest struct {
	TouristID string    `json:"tourist_id" validate:"required,uuid"`
	Lat       float64   `json:"lat" validate:"min=-90,max=90"`
	Lon       float64   `json:"lon" validate:"min=-180,max=180"`
	Timestamp time.Time `json:"timestamp"`
}
