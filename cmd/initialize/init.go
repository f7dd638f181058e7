// Package initialize implements the init subcommand: generate (or unlock)
// the wallet secret material and print the first account address.
package initialize

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/calyptra/stark-wallet/internal/config"
	"github.com/calyptra/stark-wallet/internal/util"
	"github.com/calyptra/stark-wallet/internal/wallet"
)

const minPassphraseLength = 8

// New creates the init subcommand.
func New() *cobra.Command {
	var encrypt bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate or unlock the wallet secret material",
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(encrypt); err != nil {
				log.Error().Err(err).Msg("Failed to initialize wallet")
				os.Exit(1)
			}
		},
	}

	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "encrypt secret material at rest with a passphrase")

	return cmd
}

func run(encrypt bool) error {
	cfg := config.DefaultConfigFromEnv()
	util.InitLogger(cfg.LogLevel, cfg.LogPretty)

	if encrypt && cfg.Passphrase == "" {
		passphrase, err := promptPassphrase()
		if err != nil {
			return err
		}
		cfg.Passphrase = passphrase
	}

	w, err := wallet.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	ctx := context.Background()

	mnemonic, err := w.Secrets.Mnemonic(ctx)
	if err != nil {
		return err
	}

	account, err := w.Deriver.Account(ctx, mnemonic, 0)
	if err != nil {
		return err
	}

	//nolint:forbidigo // CLI output
	fmt.Printf("Account 0: %s (%s)\n", account.Address.Hex(), account.DerivationPath)

	return nil
}

// promptPassphrase reads and confirms a passphrase from the terminal (hides
// input).
//
//nolint:forbidigo // Passphrase input requires direct terminal I/O
func promptPassphrase() (string, error) {
	fmt.Print("Enter passphrase (min 8 characters): ")
	first, err := term.ReadPassword(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", errors.Wrap(err, "failed to read passphrase")
	}

	if len(first) < minPassphraseLength {
		return "", errors.Errorf("passphrase must be at least %d characters", minPassphraseLength)
	}

	fmt.Print("Confirm passphrase: ")
	second, err := term.ReadPassword(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", errors.Wrap(err, "failed to read passphrase confirmation")
	}

	if string(first) != string(second) {
		return "", errors.New("passphrases do not match")
	}

	return string(first), nil
}
