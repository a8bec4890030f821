package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

// pageArgs reads "[page] [search...]". A leading number is the page; the
// rest is the search term.
func pageArgs(args []string) (page int, query string) {
	page = 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			page = n
			args = args[1:]
		}
	}
	return page, strings.Join(args, " ")
}

func (a *App) userID() string {
	id, _ := a.gate.UserID()
	return id
}

func (a *App) Cards(ctx context.Context, args []string) error {
	page, query := pageArgs(args)
	p, err := a.cardService.List(ctx, query, page)
	if err != nil {
		return err
	}
	heading := "Business cards"
	if query != "" {
		heading = fmt.Sprintf("Business cards matching %q", query)
	}
	fmt.Fprint(a.out, renderPage(heading, p, a.userID(), a.gate.CanLike()))
	return nil
}

func (a *App) Favorites(ctx context.Context, args []string) error {
	page, query := pageArgs(args)
	p, err := a.cardService.Favorites(ctx, query, page)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, renderPage("Favorite cards", p, a.userID(), true))
	return nil
}

func (a *App) Card(ctx context.Context, id string) error {
	c, err := a.cardService.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, renderCard(c, a.userID(), a.gate.CanLike()))
	return nil
}

func (a *App) Like(ctx context.Context, id string) error {
	c, err := a.cardService.ToggleLike(ctx, id)
	if err != nil {
		return err
	}
	msg := "Removed from favorites: " + c.Title
	if c.LikedBy(a.userID()) {
		msg = "Added to favorites: " + c.Title
	}
	fmt.Fprintln(a.out, renderSuccess(msg))
	return nil
}

// CreateCard walks a business user through the new-card form.
func (a *App) CreateCard(ctx context.Context) error {
	var in models.CardInput
	var err error

	for _, p := range []struct {
		label string
		dst   *string
	}{
		{"Title", &in.Title},
		{"Subtitle", &in.Subtitle},
	} {
		if *p.dst, err = getSimpleText(a.reader, p.label, a.out); err != nil {
			return err
		}
	}
	if in.Description, err = GetMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}
	for _, p := range []struct {
		label string
		dst   *string
	}{
		{"Phone", &in.Phone},
		{"Email", &in.Email},
		{"Web (optional)", &in.Web},
	} {
		if *p.dst, err = getSimpleText(a.reader, p.label, a.out); err != nil {
			return err
		}
	}
	if in.Image, err = a.readImage(true); err != nil {
		return err
	}
	if in.Address, err = a.readAddress(false); err != nil {
		return err
	}

	c, err := a.cardService.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderSuccess(fmt.Sprintf("Card %q created (id %s).", c.Title, c.ID)))
	return nil
}

