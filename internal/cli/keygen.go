package cli

import (
	"github.com/alecthomas/kingpin/v2"

	"github.com/dmitrymomot/otpvault/pkg/secretstore"
	"github.com/dmitrymomot/otpvault/pkg/totp"
)

// KeygenCommandInput contains the input for the keygen command.
type KeygenCommandInput struct {
	EncryptionKey bool
}

// ConfigureKeygenCommand sets up the keygen command.
func ConfigureKeygenCommand(app *kingpin.Application, a *App) {
	input := KeygenCommandInput{}

	cmd := app.Command("keygen", "Generate a new TOTP secret, or an encryption key for the postgres store")
	cmd.Flag("encryption-key", "Generate a TOTP_ENCRYPTION_KEY value instead of a TOTP secret").
		BoolVar(&input.EncryptionKey)

	cmd.Action(func(*kingpin.ParseContext) error {
		return KeygenCommand(a, input)
	})
}

// KeygenCommand prints a freshly generated secret or encryption key.
func KeygenCommand(a *App, input KeygenCommandInput) error {
	if input.EncryptionKey {
		key, err := secretstore.GenerateEncodedKey()
		if err != nil {
			return err
		}
		a.printf("TOTP_ENCRYPTION_KEY=%s\n", key)
		return nil
	}

	secret, err := totp.GenerateSecret()
	if err != nil {
		return err
	}
	a.printf("%s\n", secret)
	return nil
}
