package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

func Sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FormatInstant serializes a timestamp as a UTC instant truncated to whole
// seconds, the wire format used for all awareness and deadline fields.
func FormatInstant(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}
