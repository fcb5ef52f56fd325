package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/dmitrymomot/otpvault/pkg/vault"
)

// ListCommandInput contains the input for the list command.
type ListCommandInput struct {
	Page    int
	PerPage int // 0 means OTPVAULT_PAGE_SIZE
}

// ConfigureListCommand sets up the list command.
func ConfigureListCommand(app *kingpin.Application, a *App) {
	input := ListCommandInput{}

	cmd := app.Command("list", "List stored secrets, newest first")
	cmd.Flag("page", "Page number").
		Short('p').
		Default("1").
		IntVar(&input.Page)
	cmd.Flag("per-page", "Entries per page, 1-10 (default OTPVAULT_PAGE_SIZE)").
		IntVar(&input.PerPage)

	cmd.Action(a.run(func(ctx context.Context, svc vault.Service, userID int64) error {
		return ListCommand(ctx, a, svc, userID, input)
	}))
}

// ListCommand prints one page of entries.
func ListCommand(ctx context.Context, a *App, svc vault.Service, userID int64, input ListCommandInput) error {
	perPage := input.PerPage
	if perPage == 0 {
		perPage = a.Config.PageSize
	}

	res, err := svc.List(ctx, userID, input.Page, perPage)
	if err != nil {
		return err
	}

	s := a.styles()
	if res.Total == 0 {
		a.printf("%s\n", s.muted.Render("No secrets stored."))
		return nil
	}

	rows := make([][]string, 0, len(res.Entries))
	for _, e := range res.Entries {
		rows = append(rows, []string{
			e.ID.String(),
			e.Record.Issuer(),
			e.Record.AccountID(),
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	a.printf("%s\n", s.table([]string{"ID", "Issuer", "Account", "Added"}, rows))
	a.printf("%s\n", s.muted.Render(fmt.Sprintf("Page %d of %d, %s", res.Page, res.TotalPages, plural(res.Total, "secret"))))
	return nil
}

// ConfigureTotalCommand sets up the total command.
func ConfigureTotalCommand(app *kingpin.Application, a *App) {
	cmd := app.Command("total", "Print the number of stored secrets")

	cmd.Action(a.run(func(ctx context.Context, svc vault.Service, userID int64) error {
		return TotalCommand(ctx, a, svc, userID)
	}))
}

// TotalCommand prints the number of stored secrets.
func TotalCommand(ctx context.Context, a *App, svc vault.Service, userID int64) error {
	n, err := svc.Total(ctx, userID)
	if err != nil {
		return err
	}
	a.printf("%d\n", n)
	return nil
}

// RemoveCommandInput contains the input for the rm command.
type RemoveCommandInput struct {
	ID string
}

// ConfigureRemoveCommand sets up the rm command.
func ConfigureRemoveCommand(app *kingpin.Application, a *App) {
	input := RemoveCommandInput{}

	cmd := app.Command("rm", "Remove one secret")
	cmd.Arg("id", "Entry id").
		Required().
		StringVar(&input.ID)

	cmd.Action(a.run(func(ctx context.Context, svc vault.Service, userID int64) error {
		return RemoveCommand(ctx, a, svc, userID, input)
	}))
}

// RemoveCommand deletes one entry.
func RemoveCommand(ctx context.Context, a *App, svc vault.Service, userID int64, input RemoveCommandInput) error {
	id, err := parseID(input.ID)
	if err != nil {
		return err
	}
	if err := svc.Remove(ctx, userID, id); err != nil {
		return err
	}

	s := a.styles()
	a.printf("%s %s\n", s.label.Render("Removed"), s.value.Render(id.String()))
	return nil
}

// ResetCommandInput contains the input for the reset command.
type ResetCommandInput struct {
	Yes bool
}

// ConfigureResetCommand sets up the reset command.
func ConfigureResetCommand(app *kingpin.Application, a *App) {
	input := ResetCommandInput{}

	cmd := app.Command("reset", "Remove every stored secret of the user")
	cmd.Flag("yes", "Confirm the removal").
		Short('y').
		BoolVar(&input.Yes)

	cmd.Action(a.run(func(ctx context.Context, svc vault.Service, userID int64) error {
		return ResetCommand(ctx, a, svc, userID, input)
	}))
}

// ResetCommand deletes every entry of the user.
func ResetCommand(ctx context.Context, a *App, svc vault.Service, userID int64, input ResetCommandInput) error {
	if !input.Yes {
		return ErrConfirmationRequired
	}

	n, err := svc.Reset(ctx, userID)
	if err != nil {
		return err
	}

	s := a.styles()
	a.printf("%s %s\n", s.label.Render("Removed"), s.value.Render(plural(n, "secret")))
	return nil
}
