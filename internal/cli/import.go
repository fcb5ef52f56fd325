package cli

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kingpin/v2"

	"github.com/dmitrymomot/otpvault/pkg/file"
	"github.com/dmitrymomot/otpvault/pkg/otpimport"
	"github.com/dmitrymomot/otpvault/pkg/vault"
)

// ImportDir is the storage directory local files are uploaded to before import.
const ImportDir = "imports"

// ImportCommandInput contains the input for the import command.
type ImportCommandInput struct {
	Path string // storage path of the item file
	From string // local file uploaded to storage first
}

// ConfigureImportCommand sets up the import command.
func ConfigureImportCommand(app *kingpin.Application, a *App) {
	input := ImportCommandInput{}

	cmd := app.Command("import", "Import otpauth URIs, one per line, from a file in storage")
	cmd.Arg("path", "Storage path of the file (defaults to imports/<name of --from>)").
		StringVar(&input.Path)
	cmd.Flag("from", "Local file to upload into storage before importing").
		ExistingFileVar(&input.From)

	cmd.Action(a.run(func(ctx context.Context, svc vault.Service, userID int64) error {
		return ImportCommand(ctx, a, svc, userID, input)
	}))
}

// ImportCommand runs the bulk import pipeline over one file.
func ImportCommand(ctx context.Context, a *App, svc vault.Service, userID int64, input ImportCommandInput) error {
	p := input.Path
	if input.From != "" {
		if p == "" {
			p = path.Join(ImportDir, file.SanitizeFilename(filepath.Base(input.From)))
		}
		if err := a.upload(ctx, input.From, p); err != nil {
			return err
		}
	}
	if p == "" {
		return errors.Join(otpimport.ErrFileProcess, errors.New("either a storage path or --from is required"))
	}

	res, err := svc.ImportFile(ctx, userID, p)
	if err != nil && res.Total() == 0 {
		return err
	}

	s := a.styles()
	a.printf("%s %s  %s %s  %s %s\n",
		s.label.Render("Imported"), s.value.Render(strconv.Itoa(res.Success)),
		s.label.Render("Duplicates"), s.value.Render(strconv.Itoa(res.Duplicate)),
		s.label.Render("Invalid"), s.value.Render(strconv.Itoa(res.Invalid)),
	)
	if res.Report != nil {
		a.printf("%s %s\n", s.label.Render("Failure report:"), a.location(res.Report))
	}
	return err
}

func (a *App) upload(ctx context.Context, local, dst string) error {
	storage, err := a.Storage()
	if err != nil {
		return err
	}

	f, err := os.Open(local)
	if err != nil {
		return errors.Join(otpimport.ErrFileProcess, err)
	}
	defer f.Close()

	if _, err := storage.Put(ctx, dst, f); err != nil {
		return errors.Join(otpimport.ErrFileProcess, err)
	}
	return nil
}

// location returns a user-openable reference to a stored artifact.
func (a *App) location(f *file.File) string {
	if f.AbsolutePath != "" {
		return f.AbsolutePath
	}
	storage, err := a.Storage()
	if err != nil {
		return f.RelativePath
	}
	return storage.URL(f.RelativePath)
}
