package signer

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// starkWordHexLen is the hex length of one signature word (r or s).
const starkWordHexLen = 64

// parseFieldElement parses a hex-encoded STARK field element, with or
// without the 0x prefix.
func parseFieldElement(s string) (*big.Int, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	value, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		return nil, errors.Errorf("invalid field element: %s", s)
	}

	return value, nil
}

// joinStarkSignature joins r and s into the single signature string exposed
// to callers.
func joinStarkSignature(r *big.Int, s *big.Int) string {
	return fmt.Sprintf("0x%064x%064x", r, s)
}

// splitStarkSignature splits a joined signature back into r and s.
func splitStarkSignature(signature string) (*big.Int, *big.Int, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(signature, "0x"), "0X")
	if len(trimmed) != 2*starkWordHexLen {
		return nil, nil, errors.Errorf("invalid stark signature length: %d", len(trimmed))
	}

	r, ok := new(big.Int).SetString(trimmed[:starkWordHexLen], 16)
	if !ok {
		return nil, nil, errors.New("invalid stark signature r word")
	}

	s, ok := new(big.Int).SetString(trimmed[starkWordHexLen:], 16)
	if !ok {
		return nil, nil, errors.New("invalid stark signature s word")
	}

	return r, s, nil
}
