package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/bizcards/internal/client/client"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/services"
	"github.com/dmitrijs2005/bizcards/internal/client/validation"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	likedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

const loginHint = "Please log in first (type 'login' or 'register')."

func heart(c models.Card, userID string) string {
	if c.LikedBy(userID) {
		return likedStyle.Render("♥")
	}
	return "♡"
}

func field(label, value string) string {
	if value == "" {
		return ""
	}
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value) + "\n"
}

func formatAddress(a models.Address) string {
	parts := make([]string, 0, 4)
	street := strings.TrimSpace(a.Street)
	if a.HouseNumber > 0 {
		street = strings.TrimSpace(fmt.Sprintf("%s %d", street, a.HouseNumber))
	}
	for _, p := range []string{street, a.City, a.State, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if a.Zip > 0 {
		parts = append(parts, fmt.Sprintf("%d", a.Zip))
	}
	return strings.Join(parts, ", ")
}

// renderPage prints one listing page. showLikes hides the heart column for
// anonymous users.
func renderPage(heading string, p services.Page, userID string, showLikes bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")

	if len(p.Items) == 0 {
		b.WriteString(mutedStyle.Render("No cards found."))
		b.WriteString("\n")
		return b.String()
	}

	for _, c := range p.Items {
		line := fmt.Sprintf("%s  %s  %s", labelStyle.Render(c.ID), titleStyle.Render(c.Title), subtitleStyle.Render(c.Subtitle))
		if showLikes {
			line = fmt.Sprintf("%s %s %d", line, heart(c, userID), len(c.Likes))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("page %d of %d (%d cards)", p.Page, max(p.TotalPages, 1), p.Total)))
	b.WriteString("\n")
	return b.String()
}

func renderCard(c models.Card, userID string, showLikes bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Title))
	b.WriteString("\n")
	if c.Subtitle != "" {
		b.WriteString(subtitleStyle.Render(c.Subtitle))
		b.WriteString("\n")
	}
	if c.Description != "" {
		b.WriteString(c.Description)
		b.WriteString("\n")
	}
	b.WriteString(field("Phone", c.Phone))
	b.WriteString(field("Email", c.Email))
	b.WriteString(field("Web", c.Web))
	b.WriteString(field("Address", formatAddress(c.Address)))
	b.WriteString(field("Image", c.Image.URL))
	if c.BizNumber > 0 {
		b.WriteString(field("Card No.", fmt.Sprintf("%d", c.BizNumber)))
	}
	b.WriteString(field("Id", c.ID))
	if showLikes {
		b.WriteString(fmt.Sprintf("%s %d\n", heart(c, userID), len(c.Likes)))
	}
	return b.String()
}

func renderIdentity(id models.Identity, stale bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(id.DisplayName()))
	b.WriteString("\n")
	b.WriteString(field("Email", id.Email))
	b.WriteString(field("Phone", id.Phone))
	if id.Address != nil {
		b.WriteString(field("Address", formatAddress(*id.Address)))
	}
	if id.Image != nil {
		b.WriteString(field("Image", id.Image.URL))
	}
	kind := "personal"
	if id.IsBusiness {
		kind = "business"
	}
	if id.IsAdmin {
		kind += ", admin"
	}
	b.WriteString(field("Account", kind))
	if id.CreatedAt != nil {
		b.WriteString(field("Member since", id.CreatedAt.Format("2006-01-02")))
	}
	if stale {
		b.WriteString(mutedStyle.Render("(offline: showing cached data)"))
		b.WriteString("\n")
	}
	return b.String()
}

func renderSuccess(msg string) string {
	return successStyle.Render(msg)
}

// renderError turns a command failure into a user-facing notification.
func renderError(err error) string {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		var b strings.Builder
		b.WriteString(errorStyle.Render("Please fix the following:"))
		for _, f := range ve.Fields {
			b.WriteString("\n  ")
			b.WriteString(labelStyle.Render(f.Field))
			b.WriteString(" ")
			b.WriteString(f.Message)
		}
		return b.String()
	case errors.Is(err, services.ErrLoginRequired), errors.Is(err, client.ErrNoCredential):
		return errorStyle.Render(loginHint)
	case errors.Is(err, services.ErrBusinessRequired):
		return errorStyle.Render("Only business accounts can create cards.")
	case errors.Is(err, services.ErrTogglePending):
		return errorStyle.Render("Still saving your previous like, try again in a moment.")
	case errors.Is(err, client.ErrUnauthorized):
		return errorStyle.Render("Your session is no longer valid. Please log in again.")
	case errors.Is(err, client.ErrNotFound):
		return errorStyle.Render("Not found.")
	case errors.Is(err, client.ErrUnavailable), errors.Is(err, client.ErrThrottled):
		return errorStyle.Render("The server is unavailable, please try again later.")
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return errorStyle.Render(apiErr.Message)
	}
	return errorStyle.Render("Error: " + err.Error())
}
