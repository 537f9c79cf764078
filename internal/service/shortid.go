package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

const shortIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateOrderShortID creates a human-shareable order reference in the
// form ORD-20250901-A3K9. The alphabet drops lookalike characters so the
// reference reads well over the phone.
func GenerateOrderShortID() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	for i := range b {
		b[i] = shortIDAlphabet[int(b[i])%len(shortIDAlphabet)]
	}
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), string(b)), nil
}
