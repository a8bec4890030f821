package models

// Credentials is the POST /users/login body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the POST /users body.
type Registration struct {
	Name       Name    `json:"name"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Image      Image   `json:"image"`
	Address    Address `json:"address"`
	IsBusiness bool    `json:"isBusiness"`
}

// CardInput is the POST /cards body. BizNumber and the owner are assigned
// by the API.
type CardInput struct {
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle"`
	Description string  `json:"description"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Web         string  `json:"web,omitempty"`
	Image       Image   `json:"image"`
	Address     Address `json:"address"`
}

// ProfileUpdate is the PATCH /users/{id} body.
type ProfileUpdate struct {
	Name    Name     `json:"name"`
	Phone   string   `json:"phone"`
	Image   *Image   `json:"image,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// ProfileUpdateFrom seeds an edit form with the current identity.
func ProfileUpdateFrom(id Identity) ProfileUpdate {
	return ProfileUpdate{Name: id.Name, Phone: id.Phone, Image: id.Image, Address: id.Address}
}
