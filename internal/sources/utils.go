package sources

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// UniqueID derives a stable identifier for a community from its title and
// username, so repeated discoveries collapse to the same record.
func UniqueID(title, username string) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(title) + "|" + strings.ToLower(username)))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
