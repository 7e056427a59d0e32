package models

import "time"

// CompanyProfile is the stored issuer profile for an account. The logo is
// kept in object storage; LogoKey is its key there.
type CompanyProfile struct {
	ID        int       `json:"id"`
	OwnerID   int       `json:"owner_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	ABN       string    `json:"abn"`
	LogoKey   string    `json:"logo_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateCompanyRequest represents the request body for updating the profile
type UpdateCompanyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	ABN     string `json:"abn"`
}

// CompanyInfo is the issuer snapshot handed to the document renderer.
// Logo, when present, is an inline base64 data URI; anything else (a plain
// URL, garbage) is ignored by the renderer.
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	ABN     string `json:"abn,omitempty"`
	Logo    string `json:"logo,omitempty"`
}
