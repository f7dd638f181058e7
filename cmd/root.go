package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/calyptra/stark-wallet/cmd/address"
	"github.com/calyptra/stark-wallet/cmd/initialize"
	"github.com/calyptra/stark-wallet/cmd/sign"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stark-wallet",
	Short: "stark-wallet",
	Long: `stark-wallet

HD wallet session manager with STARK-curve co-signing.
Requires configuration through ENV (prefix STARKWALLET_).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// attach the subcommands
	rootCmd.AddCommand(
		initialize.New(),
		address.New(),
		sign.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
