package domain

import (
	"time"

	"github.com/google/uuid"
)

// Severity - серьёзность алерта
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// IsValid проверяет известность уровня серьёзности
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// AlertState - явный автомат вместо пары булевых флагов исходника:
// Created -> Acknowledged -> Resolved, Acknowledged опционален,
// Resolved терминален.
type AlertState string

const (
	AlertCreated      AlertState = "created"
	AlertAcknowledged AlertState = "acknowledged"
	AlertResolved     AlertState = "resolved"
)

// Типы алертов, создаваемые самим сервисом. Поле свободной формы:
// внешние вызовы могут передавать свои типы.
const (
	AlertTypeZoneBreach  = "zone_breach"
	AlertTypeEmergency   = "emergency"
	AlertTypeSafetyCheck = "safety_check"
	AlertTypeMedical     = "medical"
)

// Alert - уведомление о безопасности со своим жизненным циклом
type Alert struct {
	ID             int64      `json:"id" db:"id"`
	SubjectID      uuid.UUID  `json:"subject_id" db:"subject_id"`
	Type           string     `json:"type" db:"alert_type"`
	Message        string     `json:"message" db:"message"`
	Location       Point      `json:"location"`
	Severity       Severity   `json:"severity" db:"severity"`
	State          AlertState `json:"state" db:"state"`
	CreatedBy      string     `json:"created_by" db:"created_by"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty" db:"acknowledged_by"`
	ResolvedBy     string     `json:"resolved_by,omitempty" db:"resolved_by"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// Resolved сообщает, достиг ли алерт терминального состояния
func (a *Alert) Resolved() bool {
	return a.State == AlertResolved
}

// CanAcknowledge - повторное подтверждение допустимо (no-op),
// подтверждение закрытого алерта - нет
func (a *Alert) CanAcknowledge() bool {
	return a.State != AlertResolved
}

// CanResolve - закрыть можно из Created и из Acknowledged
func (a *Alert) CanResolve() bool {
	return a.State != AlertResolved
}

// ResponseType - служба экстренного реагирования
type ResponseType string

const (
	ResponsePolice  ResponseType = "police"
	ResponseMedical ResponseType = "medical"
	ResponseFire    ResponseType = "fire"
	ResponseRescue  ResponseType = "rescue"
)

// IsValid проверяет известность типа реагирования
func (t ResponseType) IsValid() bool {
	switch t {
	case ResponsePolice, ResponseMedical, ResponseFire, ResponseRescue:
		return true
	}
	return false
}

// ResponseStatus - стадия выезда. Порядок стадий дисциплиной данных не
// навязывается, это ответственность диспетчера (как в исходнике).
type ResponseStatus string

const (
	ResponseDispatched ResponseStatus = "dispatched"
	ResponseEnRoute    ResponseStatus = "en_route"
	ResponseOnSite     ResponseStatus = "on_site"
	ResponseCompleted  ResponseStatus = "completed"
)

// IsValid проверяет известность статуса реагирования
func (s ResponseStatus) IsValid() bool {
	switch s {
	case ResponseDispatched, ResponseEnRoute, ResponseOnSite, ResponseCompleted:
		return true
	}
	return false
}

// EmergencyResponse - запись реагирования, принадлежит ровно одному алерту.
// Index - позиция в списке реагирований алерта (0-based, порядок добавления).
type EmergencyResponse struct {
	AlertID     int64          `json:"alert_id" db:"alert_id"`
	Index       int            `json:"index" db:"response_index"`
	Type        ResponseType   `json:"type" db:"response_type"`
	Status      ResponseStatus `json:"status" db:"status"`
	ResponderID uuid.UUID      `json:"responder_id" db:"responder_id"`
	Notes       string         `json:"notes" db:"notes"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}
