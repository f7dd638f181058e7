// Package sign implements the sign subcommand: activate an account and sign
// a personal message with it.
package sign

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/calyptra/stark-wallet/internal/config"
	"github.com/calyptra/stark-wallet/internal/util"
	"github.com/calyptra/stark-wallet/internal/wallet"
	"github.com/calyptra/stark-wallet/internal/wallet/session"
)

// New creates the sign subcommand.
func New() *cobra.Command {
	var (
		index   int
		chainID int64
	)

	cmd := &cobra.Command{
		Use:   "sign <message>",
		Short: "Sign a personal message with the active account",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := run(index, chainID, args[0]); err != nil {
				log.Error().Err(err).Msg("Failed to sign message")
				os.Exit(1)
			}
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "account index to activate")
	cmd.Flags().Int64Var(&chainID, "chain", session.Keep, "chain id to activate (default: configured chain)")

	return cmd
}

func run(index int, chainID int64, message string) error {
	cfg := config.DefaultConfigFromEnv()
	util.InitLogger(cfg.LogLevel, cfg.LogPretty)

	w, err := wallet.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	ctx := context.Background()

	account, err := w.Session.ActiveAccount(ctx, index, chainID)
	if err != nil {
		return errors.Wrap(err, "failed to activate account")
	}

	signature, err := w.Signer.SignPersonalMessage(ctx, message)
	if err != nil {
		return err
	}

	//nolint:forbidigo // CLI output
	fmt.Printf("Signer:    %s\nSignature: %s\n", account.Address.Hex(), signature)

	return nil
}
