package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Credential - якорённая аттестация о субъекте от привилегированного эмитента.
// Валидность не хранится, а вычисляется из revoked/expiresAt.
type Credential struct {
	ID        string    `json:"id" db:"id"`
	Subject   uuid.UUID `json:"subject" db:"subject"`
	Hash      string    `json:"hash" db:"content_hash"`
	Issuer    uuid.UUID `json:"issuer" db:"issuer"`
	IssuedAt  int64     `json:"issued_at" db:"issued_at"`
	ExpiresAt int64     `json:"expires_at" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	Type      string    `json:"type" db:"cred_type"`
}

// DeriveCredentialID детерминированно выводит идентификатор из
// (subject, hash, issuer, issuedAt). Повторная выдача с теми же входами
// даёт тот же идентификатор - коллизия отклоняется при выдаче.
func DeriveCredentialID(subject uuid.UUID, hash string, issuer uuid.UUID, issuedAt int64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%d", subject, hash, issuer, issuedAt)))
	return hex.EncodeToString(sum[:])
}

// ValidAt - чистая функция валидности: не отозван и не истёк.
// ExpiresAt = 0 означает бессрочность.
func (c *Credential) ValidAt(now time.Time) bool {
	if c.Revoked {
		return false
	}
	return c.ExpiresAt == 0 || now.Unix() < c.ExpiresAt
}
