package models

import (
	"strings"
	"time"
)

// Name is a person's name as the API stores it.
type Name struct {
	First  string `json:"first"`
	Middle string `json:"middle,omitempty"`
	Last   string `json:"last"`
}

// Full joins the non-empty parts with single spaces.
func (n Name) Full() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{n.First, n.Middle, n.Last} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Image is a URL reference plus alt text.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Address is shared by users and cards.
type Address struct {
	State       string `json:"state,omitempty"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Street      string `json:"street"`
	HouseNumber int    `json:"houseNumber"`
	Zip         int    `json:"zip,omitempty"`
}

// Identity is the user record. A token-derived Identity is partial: only
// ID, Email, IsBusiness and IsAdmin are usually present.
type Identity struct {
	ID         string     `json:"_id"`
	Email      string     `json:"email,omitempty"`
	IsBusiness bool       `json:"isBusiness"`
	IsAdmin    bool       `json:"isAdmin,omitempty"`
	Name       Name       `json:"name"`
	Phone      string     `json:"phone,omitempty"`
	Image      *Image     `json:"image,omitempty"`
	Address    *Address   `json:"address,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// DisplayName prefers the full name and falls back to email, then id.
func (i Identity) DisplayName() string {
	if n := i.Name.Full(); n != "" {
		return n
	}
	if i.Email != "" {
		return i.Email
	}
	return i.ID
}
