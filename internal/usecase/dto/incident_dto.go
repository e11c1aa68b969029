package dto

// ReportIncidentRequest - заявление об инциденте
type ReportIncidentRequest struct {
	Lat        float64 `json:"lat" validate:"min=-90,max=90"`
	Lon        float64 `json:"lon" validate:"min=-180,max=180"`
	Category   string  `json:"category" validate:"required,min=1,max=100"`
	DetailsRef string  `json:"details_ref" validate:"max=500"`
	ZoneID     int64   `json:"zone_id"`
}

// ResolveIncidentRequest - закрытие инцидента
type ResolveIncidentRequest struct {
	Dismiss bool `json:"dismiss"`
}

// LinkCredentialRequest - привязка credential к инциденту
type LinkCredentialRequest struct {
	CredentialID string `json:"credential_id" validate:"required,len=64,hexadecimal"`
}
