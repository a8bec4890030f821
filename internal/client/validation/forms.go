package validation

import (
	"strings"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

// Login checks the login form.
func Login(c models.Credentials) error {
	v := &Validator{}
	v.Email("email", c.Email).
		Required("password", c.Password)
	return v.Err()
}

// Registration mirrors the sign-up form's schema.
func Registration(r models.Registration) error {
	v := &Validator{}
	v.MinLen("name.first", r.Name.First, 2).
		MinLen("name.last", r.Name.Last, 2).
		MinLen("phone", r.Phone, 9).
		Email("email", r.Email).
		MinLen("password", r.Password, 6).
		URI("image.url", r.Image.URL).
		Required("address.state", r.Address.State).
		Required("address.country", r.Address.Country).
		Required("address.city", r.Address.City).
		Required("address.street", r.Address.Street).
		Positive("address.houseNumber", r.Address.HouseNumber).
		Positive("address.zip", r.Address.Zip)
	return v.Err()
}

// Card mirrors the create-card form's rules.
func Card(c models.CardInput) error {
	v := &Validator{}
	v.Required("title", c.Title).
		Required("subtitle", c.Subtitle).
		Required("description", c.Description)

	if strings.TrimSpace(c.Phone) == "" {
		v.Required("phone", c.Phone)
	} else {
		v.Phone("phone", c.Phone)
	}
	if strings.TrimSpace(c.Email) == "" {
		v.Required("email", c.Email)
	} else {
		v.Email("email", c.Email)
	}

	v.WebURL("web", c.Web).
		Required("image.url", c.Image.URL).
		Required("address.country", c.Address.Country).
		Required("address.city", c.Address.City)
	return v.Err()
}

// ProfileUpdate checks the edit-profile form.
func ProfileUpdate(p models.ProfileUpdate) error {
	v := &Validator{}
	v.MinLen("name.first", p.Name.First, 2).
		MinLen("name.last", p.Name.Last, 2).
		MinLen("phone", p.Phone, 9)
	if p.Image != nil {
		v.URI("image.url", p.Image.URL)
	}
	return v.Err()
}
