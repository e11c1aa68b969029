package domain

import (
	"time"

	"github.com/google/uuid"
)

// IncidentStatus - линейный автомат:
// Reported -> Acknowledged -> {Resolved, Dismissed},
// плюс прямой переход Reported -> {Resolved, Dismissed}.
type IncidentStatus string

const (
	IncidentReported     IncidentStatus = "reported"
	IncidentAcknowledged IncidentStatus = "acknowledged"
	IncidentResolved     IncidentStatus = "resolved"
	IncidentDismissed    IncidentStatus = "dismissed"
)

// Terminal сообщает, завершён ли инцидент
func (s IncidentStatus) Terminal() bool {
	return s == IncidentResolved || s == IncidentDismissed
}

// Incident - заявленное репортёром событие безопасности.
// Репортёр обязан иметь активную Identity на момент подачи.
type Incident struct {
	ID           int64          `json:"id" db:"id"`
	Reporter     uuid.UUID      `json:"reporter" db:"reporter"`
	Location     Point          `json:"location"`
	Timestamp    time.Time      `json:"timestamp" db:"timestamp"`
	Category     string         `json:"category" db:"category"`
	DetailsRef   string         `json:"details_ref" db:"details_ref"`
	ZoneID       int64          `json:"zone_id" db:"zone_id"`
	Responder    uuid.UUID      `json:"responder,omitempty" db:"responder"`
	Status       IncidentStatus `json:"status" db:"status"`
	CredentialID string         `json:"credential_id,omitempty" db:"credential_id"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// CanAcknowledge - подтверждение только из Reported
func (i *Incident) CanAcknowledge() bool {
	return i.Status == IncidentReported
}

// CanResolve - закрытие из Reported или Acknowledged
func (i *Incident) CanResolve() bool {
	return i.Status == IncidentReported || i.Status == IncidentAcknowledged
}

// Assigned сообщает, назначен ли ответственный
func (i *Incident) Assigned() bool {
	return i.Responder != uuid.Nil
}
