package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDeriveCredentialID(t *testing.T) {
	subject := uuid.New()
	issuer := uuid.New()

	id1 := DeriveCredentialID(subject, "abc123", issuer, 1700000000)
	id2 := DeriveCredentialID(subject, "abc123", issuer, 1700000000)
	assert.Equal(t, id1, id2, "same inputs must derive the same id")
	assert.Len(t, id1, 64)

	// any input change produces a different id
	assert.NotEqual(t, id1, DeriveCredentialID(uuid.New(), "abc123", issuer, 1700000000))
	assert.NotEqual(t, id1, DeriveCredentialID(subject, "abc124", issuer, 1700000000))
	assert.NotEqual(t, id1, DeriveCredentialID(subject, "abc123", uuid.New(), 1700000000))
	assert.NotEqual(t, id1, DeriveCredentialID(subject, "abc123", issuer, 1700000001))
}

func TestCredentialValidAt(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name  string
		cred  Credential
		valid bool
	}{
		{
			name:  "active without expiry is valid indefinitely",
			cred:  Credential{ExpiresAt: 0},
			valid: true,
		},
		{
			name:  "active before expiry",
			cred:  Credential{ExpiresAt: now.Add(time.Hour).Unix()},
			valid: true,
		},
		{
			name:  "expired",
			cred:  Credential{ExpiresAt: now.Add(-time.Hour).Unix()},
			valid: false,
		},
		{
			name:  "exactly at expiry is invalid",
			cred:  Credential{ExpiresAt: now.Unix()},
			valid: false,
		},
		{
			name:  "revoked overrides everything",
			cred:  Credential{Revoked: true, ExpiresAt: 0},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.cred.ValidAt(now))
		})
	}
}
