package types

import "strings"

// Address is stored as JSONB on users (address book) and orders (shipping
// snapshot).
type Address struct {
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default,omitempty"`
}

// Validate reports the first missing required field, or "".
func (a Address) Validate() string {
	switch {
	case strings.TrimSpace(a.Street) == "":
		return "street"
	case strings.TrimSpace(a.City) == "":
		return "city"
	case strings.TrimSpace(a.State) == "":
		return "state"
	case strings.TrimSpace(a.ZipCode) == "":
		return "zip_code"
	case strings.TrimSpace(a.Country) == "":
		return "country"
	}
	return ""
}

// AddressList is the JSONB address book on a user.
type AddressList []Address
