package domain

import "time"

// ZoneType - классификация безопасности геозоны
type ZoneType string

const (
	ZoneTypeSafe          ZoneType = "safe"
	ZoneTypeModerate      ZoneType = "moderate"
	ZoneTypeDanger        ZoneType = "danger"
	ZoneTypeRestricted    ZoneType = "restricted"
	ZoneTypeEmergencyOnly ZoneType = "emergency_only"
	ZoneTypeCheckpoint    ZoneType = "checkpoint"
)

// IsValid проверяет, что тип зоны известен
func (t ZoneType) IsValid() bool {
	switch t {
	case ZoneTypeSafe, ZoneTypeModerate, ZoneTypeDanger,
		ZoneTypeRestricted, ZoneTypeEmergencyOnly, ZoneTypeCheckpoint:
		return true
	}
	return false
}

// TriggersAlert - вход в такую зону создаёт zone_breach алерт
func (t ZoneType) TriggersAlert() bool {
	return t == ZoneTypeDanger || t == ZoneTypeRestricted
}

// Zone - именованная круговая геозона. Идентификаторы последовательные,
// никогда не переиспользуются; зона не удаляется, только деактивируется.
type Zone struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Center      Point     `json:"center"`
	RadiusM     int64     `json:"radius_m" db:"radius_m"`
	Type        ZoneType  `json:"type" db:"zone_type"`
	Active      bool      `json:"active" db:"active"`
	CreatedBy   string    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
