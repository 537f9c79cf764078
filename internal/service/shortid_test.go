package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderShortID(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{8}-[A-HJ-NP-Z2-9]{4}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateOrderShortID()
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}

	// 32^4 combinations per day; 100 draws colliding would mean the
	// generator is broken, not unlucky.
	assert.Greater(t, len(seen), 90)
}
