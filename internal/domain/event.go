package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names (должны совпадать с backend платформы)
const (
	StreamLocationUpdate = "stream:location:update"
	StreamSafetyEvents   = "stream:safety:events"
)

// Виды сущностей в событиях
const (
	EventKindZone       = "zone"
	EventKindTourist    = "tourist"
	EventKindAlert      = "alert"
	EventKindResponse   = "response"
	EventKindIncident   = "incident"
	EventKindIdentity   = "identity"
	EventKindCredential = "credential"
	EventKindRole       = "role"
)

// Event - структурированное событие каждой мутации, потребляется
// слоем нотификаций
type Event struct {
	Kind     string    `json:"kind"`
	EntityID string    `json:"entity_id"`
	Actor    string    `json:"actor"`
	State    string    `json:"state"`
	At       time.Time `json:"at"`
}

// LocationUpdateEvent - входящее событие позиции туриста
type LocationUpdateEvent struct {
	TouristID uuid.UUID `json:"tourist_id"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Timestamp time.Time `json:"timestamp"`
}

// StreamMessage - сообщение Redis Stream с сырым JSON в Data
type StreamMessage struct {
	ID   string
	Data string
}
