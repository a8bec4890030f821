package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register walks the user through the sign-up form. Field errors are
// reported before anything is sent.
func (a *App) Register(ctx context.Context) error {
	var reg models.Registration
	var err error

	prompts := []struct {
		label string
		dst   *string
	}{
		{"First name", &reg.Name.First},
		{"Middle name (optional)", &reg.Name.Middle},
		{"Last name", &reg.Name.Last},
		{"Phone", &reg.Phone},
		{"Email", &reg.Email},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.label, a.out); err != nil {
			return err
		}
	}
	if reg.Password, err = getPassword(a.reader, a.out); err != nil {
		return err
	}
	if reg.Image, err = a.readImage(false); err != nil {
		return err
	}
	if reg.Address, err = a.readAddress(true); err != nil {
		return err
	}
	if reg.IsBusiness, err = GetYesNo(a.reader, "Business account?", a.out); err != nil {
		return err
	}

	created, err := a.authService.Register(ctx, reg)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderSuccess(fmt.Sprintf("Account %s created. You can now log in.", created.Email)))
	return nil
}

// Login prompts for credentials, signs in and resolves the identity.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	if _, err := a.authService.Login(ctx, models.Credentials{Email: email, Password: password}); err != nil {
		return err
	}

	name := email
	if id, _, ok := a.gate.Identity(); ok {
		name = id.DisplayName()
	}
	fmt.Fprintln(a.out, renderSuccess("Logged in as "+name))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderSuccess("Logged out."))
	return nil
}

// WhoAmI prints what is known about the signed-in user without calling the
// API.
func (a *App) WhoAmI(ctx context.Context) error {
	id, source, ok := a.gate.Identity()
	if !ok {
		fmt.Fprintln(a.out, mutedStyle.Render("Logged in, identity not resolved yet."))
		return nil
	}
	fmt.Fprint(a.out, renderIdentity(id, false))
	fmt.Fprintln(a.out, mutedStyle.Render("source: "+source.String()))
	return nil
}

func (a *App) readImage(required bool) (models.Image, error) {
	label := "Image URL (optional)"
	if required {
		label = "Image URL"
	}
	var img models.Image
	var err error
	if img.URL, err = getSimpleText(a.reader, label, a.out); err != nil {
		return img, err
	}
	if img.Alt, err = getSimpleText(a.reader, "Image description (optional)", a.out); err != nil {
		return img, err
	}
	return img, nil
}

func (a *App) readAddress(withState bool) (models.Address, error) {
	var addr models.Address
	var err error
	stateLabel := "State (optional)"
	if withState {
		stateLabel = "State"
	}
	if addr.State, err = getSimpleText(a.reader, stateLabel, a.out); err != nil {
		return addr, err
	}
	for _, p := range []struct {
		label string
		dst   *string
	}{
		{"Country", &addr.Country},
		{"City", &addr.City},
		{"Street", &addr.Street},
	} {
		if *p.dst, err = getSimpleText(a.reader, p.label, a.out); err != nil {
			return addr, err
		}
	}
	if addr.HouseNumber, err = GetInt(a.reader, "House number", a.out); err != nil {
		return addr, err
	}
	if addr.Zip, err = GetInt(a.reader, "Zip", a.out); err != nil {
		return addr, err
	}
	return addr, nil
}
