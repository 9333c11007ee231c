package model

// Location is a venue the ensemble performs at, one field per Locations
// column. Locations are create-only; Name is unique by convention (it is
// the lookup key in the venue picker) but the store does not enforce that.
type Location struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}
