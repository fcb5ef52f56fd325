package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	"github.com/google/uuid"

	"github.com/dmitrymomot/otpvault/pkg/qrcode"
	"github.com/dmitrymomot/otpvault/pkg/vault"
)

// ExportCommandInput contains the input for the export command.
type ExportCommandInput struct {
	IDs    []string
	ToFile bool
}

// ConfigureExportCommand sets up the export command.
func ConfigureExportCommand(app *kingpin.Application, a *App) {
	input := ExportCommandInput{}

	cmd := app.Command("export", "Export secrets as otpauth URIs, one per line")
	cmd.Arg("ids", "Entry ids to export (default all)").
		StringsVar(&input.IDs)
	cmd.Flag("file", "Write export_<timestamp>.txt to storage instead of printing").
		BoolVar(&input.ToFile)

	cmd.Action(a.run(func(ctx context.Context, svc vault.Service, userID int64) error {
		return ExportCommand(ctx, a, svc, userID, input)
	}))
}

// ExportCommand prints or stores the URIs of the selected entries.
func ExportCommand(ctx context.Context, a *App, svc vault.Service, userID int64, input ExportCommandInput) error {
	ids, err := parseIDs(input.IDs)
	if err != nil {
		return err
	}

	if input.ToFile {
		f, err := svc.ExportFile(ctx, userID, ids...)
		if err != nil {
			return err
		}
		s := a.styles()
		a.printf("%s %s\n", s.label.Render("Exported to"), a.location(f))
		return nil
	}

	uris, err := svc.Export(ctx, userID, ids...)
	if err != nil {
		return err
	}
	for _, u := range uris {
		a.printf("%s\n", u)
	}
	return nil
}

// ExportQRCommandInput contains the input for the export-qr command.
type ExportQRCommandInput struct {
	IDs []string
}

// ConfigureExportQRCommand sets up the export-qr command.
func ConfigureExportQRCommand(app *kingpin.Application, a *App) {
	input := ExportQRCommandInput{}

	cmd := app.Command("export-qr", "Export secrets as QR code images: one PNG, or a zip for several")
	cmd.Arg("ids", "Entry ids to export (default all)").
		StringsVar(&input.IDs)

	cmd.Action(a.run(func(ctx context.Context, svc vault.Service, userID int64) error {
		return ExportQRCommand(ctx, a, svc, userID, input)
	}))
}

// ExportQRCommand stores QR images of the selected entries.
func ExportQRCommand(ctx context.Context, a *App, svc vault.Service, userID int64, input ExportQRCommandInput) error {
	ids, err := parseIDs(input.IDs)
	if err != nil {
		return err
	}

	f, err := svc.ExportQR(ctx, userID, ids...)
	if err != nil {
		return err
	}

	s := a.styles()
	a.printf("%s %s\n", s.label.Render("QR export written to"), a.location(f))
	return nil
}

// QRCommandInput contains the input for the qr command.
type QRCommandInput struct {
	ID    string
	Force bool
}

// ConfigureQRCommand sets up the qr command.
func ConfigureQRCommand(app *kingpin.Application, a *App) {
	input := QRCommandInput{}

	cmd := app.Command("qr", "Show the QR code of one entry in the terminal")
	cmd.Arg("id", "Entry id").
		Required().
		StringVar(&input.ID)
	cmd.Flag("force", "Draw the code even when stdout is not a terminal").
		BoolVar(&input.Force)

	cmd.Action(a.run(func(ctx context.Context, svc vault.Service, userID int64) error {
		return QRCommand(ctx, a, svc, userID, input)
	}))
}

// QRCommand draws the entry's otpauth URI as a QR code, followed by the URI.
func QRCommand(ctx context.Context, a *App, svc vault.Service, userID int64, input QRCommandInput) error {
	id, err := parseID(input.ID)
	if err != nil {
		return err
	}

	uris, err := svc.Export(ctx, userID, id)
	if err != nil {
		return err
	}

	if input.Force || isTerminal(a.Stdout) {
		art, err := qrcode.Terminal(uris[0])
		if err != nil {
			return err
		}
		a.printf("%s", art)
	}
	a.printf("%s\n", uris[0])
	return nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidEntryID, raw)
	}
	return id, nil
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := parseID(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
