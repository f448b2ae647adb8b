package certification

import "github.com/mehmetcc/folio/internal/dbx"

type Certification struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Issuer         string   `json:"issuer"`
	Date           string   `json:"date"`
	CredentialURL  string   `json:"credential_url"`
	Image          string   `json:"image"`
	Description    string   `json:"description"`
	Skills         []string `json:"skills"`
	CertificateID  string   `json:"certificate_id"`
	ExpirationDate dbx.Date `json:"expiration_date"`
}
