// Package address implements the address subcommand: print the derived
// address for an account index.
package address

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/calyptra/stark-wallet/internal/config"
	"github.com/calyptra/stark-wallet/internal/util"
	"github.com/calyptra/stark-wallet/internal/wallet"
)

// New creates the address subcommand.
func New() *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "address",
		Short: "Print the derived address for an account index",
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(index); err != nil {
				log.Error().Err(err).Msg("Failed to derive address")
				os.Exit(1)
			}
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "account index to derive")

	return cmd
}

func run(index int) error {
	cfg := config.DefaultConfigFromEnv()
	util.InitLogger(cfg.LogLevel, cfg.LogPretty)

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

	account, err := w.Deriver.Account(ctx, mnemonic, index)
	if err != nil {
		return err
	}

	//nolint:forbidigo // CLI output
	fmt.Printf("%s\n", account.Address.Hex())

	return nil
}
