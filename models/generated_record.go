package models

type GeneratedRecord struct {
	Line1          string   `json:"line1"`
	Line2          string   `json:"line2"`
	DocumentType   string   `json:"document_type"`
	DocumentKind   string   `json:"document_kind,omitempty"` // ordinary, diplomatic, ...
	IssuingState   string   `json:"issuing_state"`
	Surname        string   `json:"surname"`
	GivenNames     []string `json:"given_names"`
	DocumentNumber string   `json:"document_number"`
	Nationality    string   `json:"nationality"`
	DateOfBirth    string   `json:"date_of_birth"`  // YYYY-MM-DD
	DateOfExpiry   string   `json:"date_of_expiry"` // YYYY-MM-DD
	Sex            string   `json:"sex"`
	PersonalNumber string   `json:"personal_number,omitempty"`
	IsEuCitizen    string   `json:"is_eu_citizen"`
}
