package models

import (
	"slices"
	"strings"
	"time"
)

// Card is a business card as returned by GET /cards.
type Card struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Description string     `json:"description"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Web         string     `json:"web,omitempty"`
	Image       Image      `json:"image"`
	Address     Address    `json:"address"`
	BizNumber   int        `json:"bizNumber,omitempty"`
	Likes       []string   `json:"likes"`
	OwnerID     string     `json:"user_id,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// Clone returns a copy that shares no slices with c.
func (c Card) Clone() Card {
	c.Likes = slices.Clone(c.Likes)
	return c
}

// LikedBy reports whether userID is in the likes set.
func (c Card) LikedBy(userID string) bool {
	return userID != "" && slices.Contains(c.Likes, userID)
}

// WithLikeToggled returns a copy of c with userID removed from likes when
// present, or appended when absent. The order of the other ids is kept.
// An empty userID leaves the set unchanged.
func (c Card) WithLikeToggled(userID string) Card {
	out := c.Clone()
	if userID == "" {
		return out
	}
	if out.LikedBy(userID) {
		out.Likes = slices.DeleteFunc(out.Likes, func(id string) bool { return id == userID })
		return out
	}
	out.Likes = append(out.Likes, userID)
	return out
}

// Matches reports whether term is a case-insensitive substring of any of
// the searchable fields. An empty term matches everything.
func (c Card) Matches(term string, fields ...CardField) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if len(fields) == 0 {
		fields = DefaultSearchFields
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f.value(c)), term) {
			return true
		}
	}
	return false
}

// CardField names a searchable card attribute.
type CardField int

const (
	FieldTitle CardField = iota
	FieldSubtitle
	FieldEmail
	FieldPhone
)

// DefaultSearchFields is what a plain directory search looks at.
var DefaultSearchFields = []CardField{FieldTitle, FieldSubtitle, FieldEmail, FieldPhone}

// FavoriteSearchFields is narrower: favorites are searched by title and subtitle only.
var FavoriteSearchFields = []CardField{FieldTitle, FieldSubtitle}

func (f CardField) value(c Card) string {
	switch f {
	case FieldTitle:
		return c.Title
	case FieldSubtitle:
		return c.Subtitle
	case FieldEmail:
		return c.Email
	case FieldPhone:
		return c.Phone
	default:
		return ""
	}
}
