package dto

import "github.com/safety-microservice/internal/domain"

// RegisterIdentityRequest - самостоятельная регистрация цифровой личности
type RegisterIdentityRequest struct {
	IDHash    string `json:"id_hash" validate:"required,min=8,max=128"`
	URI       string `json:"uri" validate:"required,max=500"`
	PubKeyRef string `json:"pub_key_ref" validate:"max=500"`
}

// UpdateIdentityRequest - обновление активной личности
type UpdateIdentityRequest struct {
	URI       string `json:"uri" validate:"required,max=500"`
	PubKeyRef string `json:"pub_key_ref" validate:"max=500"`
}

// IssueCredentialRequest - выдача credential эмитентом
type IssueCredentialRequest struct {
	Subject   string `json:"subject" validate:"required,uuid"`
	Hash      string `json:"hash" validate:"required,min=8,max=128"`
	Type      string `json:"type" validate:"required,min=1,max=100"`
	ExpiresAt int64  `json:"expires_at" validate:"min=0"`
}

// CredentialStatus - credential вместе с вычисленной валидностью
type CredentialStatus struct {
	Credential *domain.Credential `json:"credential"`
	Valid      bool               `json:"valid"`
}

// FindCredentialIDRequest - воспроизведение производного идентификатора
type FindCredentialIDRequest struct {
	Subject  string `json:"subject" validate:"required,uuid"`
	Hash     string `json:"hash" validate:"required,min=8,max=128"`
	Issuer   string `json:"issuer" validate:"required,uuid"`
	IssuedAt int64  `json:"issued_at" validate:"required,min=1"`
}

// GrantRoleRequest - выдача или отзыв роли
type GrantRoleRequest struct {
	Role  string `json:"role" validate:"required,oneof=ADMIN ISSUER RESPONDER"`
	Actor string `json:"actor" validate:"required,uuid"`
}
