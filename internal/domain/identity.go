package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity - самостоятельно регистрируемая цифровая личность, 1:1 с актором.
// Повторная регистрация после деактивации перезаписывает запись,
// история не сохраняется.
type Identity struct {
	Actor     uuid.UUID `json:"actor" db:"actor"`
	IDHash    string    `json:"id_hash" db:"id_hash"`
	URI       string    `json:"uri" db:"uri"`
	PubKeyRef string    `json:"pub_key_ref,omitempty" db:"pub_key_ref"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
