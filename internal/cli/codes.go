package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/dmitrymomot/otpvault/pkg/vault"
)

// GetCommandInput contains the input for the get command.
type GetCommandInput struct {
	Query []string
}

// ConfigureGetCommand sets up the get command.
func ConfigureGetCommand(app *kingpin.Application, a *App) {
	input := GetCommandInput{}

	cmd := app.Command("get", "Show current codes of secrets whose issuer or account matches the filter")
	cmd.Arg("filter", "Case-insensitive text matched against issuer and account").
		Required().
		StringsVar(&input.Query)

	cmd.Action(a.run(func(ctx context.Context, svc vault.Service, userID int64) error {
		return GetCommand(ctx, a, svc, userID, input)
	}))
}

// GetCommand prints a table of matching entries with their current codes.
func GetCommand(ctx context.Context, a *App, svc vault.Service, userID int64, input GetCommandInput) error {
	codes, err := svc.Codes(ctx, userID, strings.Join(input.Query, " "), a.now())
	if err != nil {
		return err
	}

	s := a.styles()
	if len(codes) == 0 {
		a.printf("%s\n", s.muted.Render("No secrets match the filter."))
		return nil
	}

	rows := make([][]string, 0, len(codes))
	for _, c := range codes {
		rows = append(rows, []string{
			c.Entry.ID.String(),
			c.Entry.Record.Issuer(),
			c.Entry.Record.AccountID(),
			c.Code.Value,
			strconv.Itoa(c.Code.SecondsRemaining) + "s",
		})
	}
	a.printf("%s\n", s.table([]string{"ID", "Issuer", "Account", "Code", "Valid"}, rows))
	return nil
}

// TempCommandInput contains the input for the temp command.
type TempCommandInput struct {
	Secret string
}

// ConfigureTempCommand sets up the temp command.
func ConfigureTempCommand(app *kingpin.Application, a *App) {
	input := TempCommandInput{}

	cmd := app.Command("temp", "Print the current code of a secret without storing it")
	cmd.Arg("secret", "Base32 secret").
		Required().
		StringVar(&input.Secret)

	cmd.Action(a.run(func(_ context.Context, svc vault.Service, _ int64) error {
		return TempCommand(a, svc, input)
	}))
}

// TempCommand prints the code for an ad-hoc secret using default parameters.
func TempCommand(a *App, svc vault.Service, input TempCommandInput) error {
	code, err := svc.Temp(input.Secret, a.now())
	if err != nil {
		return err
	}

	s := a.styles()
	a.printf("%s %s\n", s.value.Render(code.Value), s.muted.Render("valid for "+strconv.Itoa(code.SecondsRemaining)+"s"))
	return nil
}
