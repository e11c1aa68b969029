package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAlertStateMachine(t *testing.T) {
	tests := []struct {
		name           string
		state          AlertState
		canAcknowledge bool
		canResolve     bool
		resolved       bool
	}{
		{
			name:           "created alert can move anywhere",
			state:          AlertCreated,
			canAcknowledge: true,
			canResolve:     true,
			resolved:       false,
		},
		{
			name:           "acknowledged alert can be acknowledged again or resolved",
			state:          AlertAcknowledged,
			canAcknowledge: true,
			canResolve:     true,
			resolved:       false,
		},
		{
			name:           "resolved alert is terminal",
			state:          AlertResolved,
			canAcknowledge: false,
			canResolve:     false,
			resolved:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Alert{State: tt.state}
			assert.Equal(t, tt.canAcknowledge, a.CanAcknowledge())
			assert.Equal(t, tt.canResolve, a.CanResolve())
			assert.Equal(t, tt.resolved, a.Resolved())
		})
	}
}

func TestIncidentStateMachine(t *testing.T) {
	tests := []struct {
		name           string
		status         IncidentStatus
		canAcknowledge bool
		canResolve     bool
		terminal       bool
	}{
		{"reported", IncidentReported, true, true, false},
		{"acknowledged", IncidentAcknowledged, false, true, false},
		{"resolved is terminal", IncidentResolved, false, false, true},
		{"dismissed is terminal", IncidentDismissed, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := &Incident{Status: tt.status}
			assert.Equal(t, tt.canAcknowledge, i.CanAcknowledge())
			assert.Equal(t, tt.canResolve, i.CanResolve())
			assert.Equal(t, tt.terminal, tt.status.Terminal())
		})
	}
}

func TestIncidentAssigned(t *testing.T) {
	i := &Incident{}
	assert.False(t, i.Assigned())

	i.Responder = uuid.New()
	assert.True(t, i.Assigned())
}

func TestStatusForZone(t *testing.T) {
	tests := []struct {
		name     string
		matched  bool
		zoneType ZoneType
		expected TouristStatus
	}{
		{"no zone match is safe", false, "", StatusSafe},
		{"safe zone", true, ZoneTypeSafe, StatusSafe},
		{"checkpoint zone", true, ZoneTypeCheckpoint, StatusSafe},
		{"moderate zone", true, ZoneTypeModerate, StatusWarning},
		{"emergency only zone", true, ZoneTypeEmergencyOnly, StatusWarning},
		{"danger zone", true, ZoneTypeDanger, StatusDanger},
		{"restricted zone", true, ZoneTypeRestricted, StatusDanger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusForZone(tt.matched, tt.zoneType))
		})
	}
}

func TestZoneTypeTriggersAlert(t *testing.T) {
	assert.True(t, ZoneTypeDanger.TriggersAlert())
	assert.True(t, ZoneTypeRestricted.TriggersAlert())
	assert.False(t, ZoneTypeSafe.TriggersAlert())
	assert.False(t, ZoneTypeModerate.TriggersAlert())
	assert.False(t, ZoneTypeEmergencyOnly.TriggersAlert())
	assert.False(t, ZoneTypeCheckpoint.TriggersAlert())
}

func TestZoneTypeIsValid(t *testing.T) {
	valid := []ZoneType{ZoneTypeSafe, ZoneTypeModerate, ZoneTypeDanger,
		ZoneTypeRestricted, ZoneTypeEmergencyOnly, ZoneTypeCheckpoint}
	for _, zt := range valid {
		assert.True(t, zt.IsValid(), string(zt))
	}
	assert.False(t, ZoneType("volcano").IsValid())
	assert.False(t, ZoneType("").IsValid())
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleIssuer.IsValid())
	assert.True(t, RoleResponder.IsValid())
	assert.False(t, Role("admin").IsValid()) // case sensitive
	assert.False(t, Role("SUPERUSER").IsValid())
}
