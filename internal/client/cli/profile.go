package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

// Profile shows the user's record followed by the first page of cards they
// liked.
func (a *App) Profile(ctx context.Context) error {
	id, stale, err := a.profileService.Get(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, renderIdentity(id, stale))

	liked, err := a.cardService.Favorites(ctx, "", 1)
	if err != nil {
		a.log.Warn(ctx, "liked cards unavailable", "error", err)
		fmt.Fprintln(a.out, mutedStyle.Render("Liked cards are unavailable right now."))
		return nil
	}
	fmt.Fprint(a.out, renderPage("Liked cards", liked, id.ID, true))
	return nil
}

// EditProfile pre-fills the form with the current record; pressing Enter
// keeps a value.
func (a *App) EditProfile(ctx context.Context) error {
	current, _, err := a.profileService.Get(ctx)
	if err != nil {
		return err
	}
	upd := models.ProfileUpdateFrom(current)

	for _, p := range []struct {
		label string
		dst   *string
	}{
		{"First name", &upd.Name.First},
		{"Middle name", &upd.Name.Middle},
		{"Last name", &upd.Name.Last},
		{"Phone", &upd.Phone},
	} {
		if *p.dst, err = GetWithDefault(a.reader, p.label, *p.dst, a.out); err != nil {
			return err
		}
	}

	imageURL := ""
	if upd.Image != nil {
		imageURL = upd.Image.URL
	}
	if imageURL, err = GetWithDefault(a.reader, "Image URL", imageURL, a.out); err != nil {
		return err
	}
	if imageURL != "" {
		img := models.Image{URL: imageURL}
		if upd.Image != nil && upd.Image.URL == imageURL {
			img.Alt = upd.Image.Alt
		}
		upd.Image = &img
	}

	updated, err := a.profileService.Update(ctx, upd)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderSuccess("Profile updated."))
	fmt.Fprint(a.out, renderIdentity(updated, false))
	return nil
}
