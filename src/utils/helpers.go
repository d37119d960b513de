package utils

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"regexp"
	"strings"
)

// Visitor IDs are 24 hex characters on the wire. Anything else scanned at the
// desk (URLs, wifi QR payloads) must be rejected before touching storage.
var hexIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

func IsHexID(s string) bool {
	return hexIDPattern.MatchString(s)
}

// NewID generates a 24-character hex identifier.
func NewID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Could not read random bytes: %s\n", err.Error())
	}
	return hex.EncodeToString(buf)
}

// NormalizeCode strips the surrounding whitespace camera decoders tend to add.
func NormalizeCode(raw string) string {
	return strings.TrimSpace(raw)
}
