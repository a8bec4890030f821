package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// gateView is the read-only permission surface the REPL consults.
// *services.Gate satisfies it.
type gateView interface {
	IsAuthenticated() bool
	CanLike() bool
	CanViewFavorites() bool
	CanEditProfile() bool
	CanCreateCard() bool
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Gate() gateView
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Cards(ctx context.Context, args []string) error
	Card(ctx context.Context, id string) error
	Like(ctx context.Context, id string) error
	Favorites(ctx context.Context, args []string) error
	CreateCard(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
}

type commandInfo struct {
	name    string
	usage   string
	summary string
	// allowed is nil for commands anyone may run.
	allowed func(gateView) bool
	// denied is printed instead of running the command.
	denied string
}

func anonymousOnly(g gateView) bool { return !g.IsAuthenticated() }

var commands = []commandInfo{
	{name: "help", summary: "show available commands"},
	{name: "register", summary: "create an account", allowed: anonymousOnly, denied: "Already logged in; use 'logout' first."},
	{name: "login", summary: "sign in", allowed: anonymousOnly, denied: "Already logged in; use 'logout' first."},
	{name: "cards", usage: "[page] [search...]", summary: "browse business cards"},
	{name: "card", usage: "<id>", summary: "show one card"},
	{name: "like", usage: "<id>", summary: "like or unlike a card", allowed: gateView.CanLike, denied: loginHint},
	{name: "favorites", usage: "[page] [search...]", summary: "cards you liked", allowed: gateView.CanViewFavorites, denied: loginHint},
	{name: "create", summary: "create a business card", allowed: gateView.CanCreateCard, denied: "Only signed-in business accounts can create cards."},
	{name: "profile", summary: "show your profile", allowed: gateView.CanEditProfile, denied: loginHint},
	{name: "editprofile", summary: "edit your profile", allowed: gateView.CanEditProfile, denied: loginHint},
	{name: "whoami", summary: "show the signed-in user", allowed: gateView.IsAuthenticated, denied: loginHint},
	{name: "logout", summary: "sign out", allowed: gateView.IsAuthenticated, denied: "Not logged in."},
	{name: "exit", summary: "leave the program"},
}

func lookupCommand(name string) (commandInfo, bool) {
	if name == "quit" {
		name = "exit"
	}
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return commandInfo{}, false
}

// helpText lists the commands g currently allows.
func helpText(g gateView) string {
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, c := range commands {
		if c.allowed != nil && !c.allowed(g) {
			continue
		}
		name := c.name
		if c.usage != "" {
			name += " " + c.usage
		}
		fmt.Fprintf(&b, "\n  %-30s %s", name, c.summary)
	}
	return b.String()
}

// runREPL starts a read–eval–print loop for the bcard CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands the gate does not allow print their
// denial message and never reach the API. Errors returned by handlers are
// rendered as notifications; the loop keeps running. It exits on EOF or when
// the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("bcard %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := strings.ToLower(parts[0]), parts[1:]

		cmd, ok := lookupCommand(name)
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		if cmd.allowed != nil && !cmd.allowed(a.Gate()) {
			printlnFn(cmd.denied)
			continue
		}

		if cmd.name == "exit" {
			printlnFn("Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn(renderError(err))
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd commandInfo, args []string) error {
	switch cmd.name {
	case "help":
		printlnFn(helpText(a.Gate()))
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "cards":
		return a.Cards(ctx, args)
	case "favorites":
		return a.Favorites(ctx, args)
	case "create":
		return a.CreateCard(ctx)
	case "profile":
		return a.Profile(ctx)
	case "editprofile":
		return a.EditProfile(ctx)
	case "card", "like":
		if len(args) == 0 {
			printlnFn(fmt.Sprintf("Usage: %s %s", cmd.name, cmd.usage))
			return nil
		}
		if cmd.name == "card" {
			return a.Card(ctx, args[0])
		}
		return a.Like(ctx, args[0])
	default:
		return fmt.Errorf("command %q has no handler", cmd.name)
	}
}
