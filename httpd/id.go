package httpd

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// connID tags a connection in logs and metrics.
func connID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err == nil {
		return hex.EncodeToString(b[:])
	}
	// Fallback to timestamp-based ID if rand fails (unlikely)
	t := time.Now().UnixNano()
	var fb [8]byte
	for i := 0; i < 8; i++ {
		fb[i] = byte(t >> (uint(i) * 8))
	}
	return hex.EncodeToString(fb[:])
}
