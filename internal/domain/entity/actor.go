package entity

// Actor is the authenticated user performing an operation. The auth layer is
// out of scope; we only consume its role flags.
type Actor struct {
	ID           string `json:"id"`
	OrgID        string `json:"org_id"`
	PodeAprovar  bool   `json:"pode_aprovar"`
	PodeVerTodas bool   `json:"pode_ver_todas"`
}
