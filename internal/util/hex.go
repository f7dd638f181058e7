package util

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// IsHexString reports whether s is a 0x-prefixed, even-length hex string.
// Used to auto-detect hex-encoded message payloads at the signing boundary.
func IsHexString(s string) bool {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	body := s[2:]
	if len(body) == 0 || len(body)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(body)
	return err == nil
}

// DecodeHexString decodes a hex string with or without the 0x prefix.
func DecodeHexString(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode hex string")
	}
	return b, nil
}
