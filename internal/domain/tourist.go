package domain

import (
	"time"

	"github.com/google/uuid"
)

// TouristStatus - производный статус туриста по последней локации
type TouristStatus string

const (
	StatusSafe    TouristStatus = "safe"
	StatusWarning TouristStatus = "warning"
	StatusDanger  TouristStatus = "danger"
	StatusUnknown TouristStatus = "unknown"
)

// StatusForZone классифицирует статус по типу совпавшей зоны.
// Точка вне всех зон считается безопасной.
func StatusForZone(matched bool, zoneType ZoneType) TouristStatus {
	if !matched {
		return StatusSafe
	}
	switch zoneType {
	case ZoneTypeDanger, ZoneTypeRestricted:
		return StatusDanger
	case ZoneTypeModerate, ZoneTypeEmergencyOnly:
		return StatusWarning
	default:
		return StatusSafe
	}
}

// Tourist - зарегистрированный субъект трекинга
type Tourist struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	Name         string        `json:"name" db:"name"`
	PassportHash string        `json:"passport_hash" db:"passport_hash"`
	Nationality  string        `json:"nationality" db:"nationality"`
	Phone        string        `json:"phone" db:"phone"`
	Status       TouristStatus `json:"status" db:"status"`
	Active       bool          `json:"active" db:"active"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

// LocationSample - неизменяемая запись истории перемещений.
// ZoneID = 0, если точка не попала ни в одну зону.
type LocationSample struct {
	ID        int64         `json:"id" db:"id"`
	TouristID uuid.UUID     `json:"tourist_id" db:"tourist_id"`
	Location  Point         `json:"location"`
	Timestamp time.Time     `json:"timestamp" db:"timestamp"`
	Status    TouristStatus `json:"status" db:"status"`
	ZoneID    int64         `json:"zone_id" db:"zone_id"`
}
