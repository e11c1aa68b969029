package dto

import "github.com/safety-microservice/internal/domain"

// TriggerAlertRequest - запрос на создание алерта
type TriggerAlertRequest struct {
	SubjectID string  `json:"subject_id" validate:"required,uuid"`
	Type      string  `json:"type" validate:"required,min=1,max=100"`
	Message   string  `json:"message" validate:"max=2000"`
	Lat       float64 `json:"lat" validate:"min=-90,max=90"`
	Lon       float64 `json:"lon" validate:"min=-180,max=180"`
	Severity  string  `json:"severity" validate:"required"`
}

// DispatchResponseRequest - запрос на отправку реагирования по алерту
type DispatchResponseRequest struct {
	Type  string `json:"type" validate:"required"`
	Notes string `json:"notes" validate:"max=2000"`
}

// UpdateResponseStatusRequest - обновление стадии реагирования
type UpdateResponseStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes" validate:"max=2000"`
}

// AlertWithResponses - алерт вместе с его записями реагирования
type AlertWithResponses struct {
	Alert     *domain.Alert               `json:"alert"`
	Responses []*domain.EmergencyResponse `json:"responses"`
}
