package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Entity prefixes keep ids recognisable in audit targets and exports.
const (
	PrefixUser    = "USR"
	PrefixItem    = "INV"
	PrefixRequest = "REQ"
	PrefixLog     = "LOG"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// New returns "<prefix>-<32 hex>".
func New(prefix string) string { return prefix + "-" + NewID32() }
