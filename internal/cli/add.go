package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/dmitrymomot/otpvault/pkg/secretstore"
	"github.com/dmitrymomot/otpvault/pkg/vault"
)

// AddCommandInput contains the input for the add command.
type AddCommandInput struct {
	Pairs []string
}

// ConfigureAddCommand sets up the add command.
func ConfigureAddCommand(app *kingpin.Application, a *App) {
	input := AddCommandInput{}

	cmd := app.Command("add", "Add a secret from key=value pairs: secret=..., issuer=..., name=..., digits, period, algorithm")
	cmd.Arg("pairs", "key=value pairs, comma or space separated").
		Required().
		StringsVar(&input.Pairs)

	cmd.Action(a.run(func(ctx context.Context, svc vault.Service, userID int64) error {
		return AddCommand(ctx, a, svc, userID, input)
	}))
}

// AddCommand stores a secret entered as key=value pairs.
func AddCommand(ctx context.Context, a *App, svc vault.Service, userID int64, input AddCommandInput) error {
	e, err := svc.Add(ctx, userID, strings.Join(input.Pairs, ","))
	if err != nil {
		return err
	}
	a.printAdded(e)
	return nil
}

// AddURICommandInput contains the input for the add-uri command.
type AddURICommandInput struct {
	URI string
}

// ConfigureAddURICommand sets up the add-uri command.
func ConfigureAddURICommand(app *kingpin.Application, a *App) {
	input := AddURICommandInput{}

	cmd := app.Command("add-uri", "Add a secret from an otpauth://totp URI")
	cmd.Arg("uri", "otpauth URI").
		Required().
		StringVar(&input.URI)

	cmd.Action(a.run(func(ctx context.Context, svc vault.Service, userID int64) error {
		return AddURICommand(ctx, a, svc, userID, input)
	}))
}

// AddURICommand stores the secret encoded in one otpauth URI.
func AddURICommand(ctx context.Context, a *App, svc vault.Service, userID int64, input AddURICommandInput) error {
	e, err := svc.AddURI(ctx, userID, input.URI)
	if err != nil {
		return err
	}
	a.printAdded(e)
	return nil
}

func (a *App) printAdded(e secretstore.Entry) {
	s := a.styles()
	a.printf("%s %s %s\n", s.label.Render("Added"), s.value.Render(e.ID.String()), describe(e))
}

func describe(e secretstore.Entry) string {
	switch {
	case e.Record.Issuer() != "" && e.Record.AccountID() != "":
		return e.Record.Issuer() + " (" + e.Record.AccountID() + ")"
	case e.Record.Issuer() != "":
		return e.Record.Issuer()
	default:
		return e.Record.AccountID()
	}
}
