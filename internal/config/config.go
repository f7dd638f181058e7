// Package config holds the ENV-driven service configuration.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full configuration of the wallet session service.
type Config struct {
	// DatabasePath is the directory of the badger database holding the
	// persisted secret material.
	DatabasePath string

	// Passphrase encrypts secret material at rest when non-empty.
	Passphrase string

	// DefaultChainID is the chain activated when the caller does not name one.
	DefaultChainID int64

	// RPCOverrides maps chain ids to RPC endpoints, overriding the built-in
	// registry. Populated from CHAIN_RPC ("1=https://...,137=https://...").
	RPCOverrides map[int64]string

	LogLevel  string
	LogPretty bool
}

// DefaultConfigFromEnv returns the configuration with all values resolved
// from the environment (prefix STARKWALLET_) or their defaults.
func DefaultConfigFromEnv() Config {
	v := viper.New()
	v.SetEnvPrefix("STARKWALLET")
	v.AutomaticEnv()

	v.SetDefault("database_path", defaultDatabasePath())
	v.SetDefault("passphrase", "")
	v.SetDefault("default_chain_id", 1)
	v.SetDefault("chain_rpc", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)

	return Config{
		DatabasePath:   v.GetString("database_path"),
		Passphrase:     v.GetString("passphrase"),
		DefaultChainID: v.GetInt64("default_chain_id"),
		RPCOverrides:   parseRPCOverrides(v.GetString("chain_rpc")),
		LogLevel:       v.GetString("log_level"),
		LogPretty:      v.GetBool("log_pretty"),
	}
}

// parseRPCOverrides parses a comma-separated list of chainID=url pairs.
// Malformed pairs are skipped.
func parseRPCOverrides(raw string) map[int64]string {
	if raw == "" {
		return nil
	}

	overrides := make(map[int64]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		idx := strings.Index(pair, "=")
		if idx <= 0 || idx == len(pair)-1 {
			continue
		}

		chainID, err := strconv.ParseInt(strings.TrimSpace(pair[:idx]), 10, 64)
		if err != nil {
			continue
		}

		overrides[chainID] = strings.TrimSpace(pair[idx+1:])
	}

	if len(overrides) == 0 {
		return nil
	}

	return overrides
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stark-wallet"
	}
	return filepath.Join(home, ".stark-wallet", "db")
}
