package domain

import "time"

// Address is a saved shipping address belonging to a user. A soft-deleted
// address (DeletedAt set) stays referencable by past orders but is invisible
// to listing, updates, and checkout resolution.
type Address struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Label        string     `json:"label,omitempty"`
	FullName     string     `json:"full_name"`
	Phone        string     `json:"phone,omitempty"`
	AddressLine1 string     `json:"address_line1"`
	AddressLine2 string     `json:"address_line2,omitempty"`
	City         string     `json:"city"`
	State        string     `json:"state,omitempty"`
	PostalCode   string     `json:"postal_code"`
	IsDefault    bool       `json:"is_default"`
	DeletedAt    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AddressInput carries the address fields a client may submit, either as a
// reference to an existing address (ID set) or as the seed for a new one.
type AddressInput struct {
	ID           string `json:"id,omitempty"`
	Label        string `json:"label,omitempty"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone,omitempty"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code"`
	IsDefault    bool   `json:"is_default,omitempty"`
}

// HasRequiredFields reports whether the input can seed a new address row.
func (in AddressInput) HasRequiredFields() bool {
	return in.FullName != "" && in.AddressLine1 != "" && in.City != "" && in.PostalCode != ""
}
