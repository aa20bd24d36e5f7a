package transport

// NormalizeBatchRequest contains identifiers to normalize in one call.
type NormalizeBatchRequest struct {
	Identifiers []string `json:"identifiers" validate:"required,min=1,max=500,dive,max=256"`
	// National interprets bare numbers in the configured default region first.
	National bool `json:"national"`
}

// JIDResponse describes one normalized identifier.
type JIDResponse struct {
	Input       string `json:"input"`
	JID         string `json:"jid"`
	Class       string `json:"class"`
	User        string `json:"user"`
	Server      string `json:"server"`
	Region      string `json:"region,omitempty"`
	CountryCode int    `json:"countryCode,omitempty"`
	E164        string `json:"e164,omitempty"`
}

// NormalizeBatchResponse wraps batch results in request order.
type NormalizeBatchResponse struct {
	Items []JIDResponse `json:"items"`
	Total int           `json:"total"`
}
