package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "biblio/pkg/domain-errors"
)

func TestParsePatronID(t *testing.T) {
	t.Run("accepts six digits", func(t *testing.T) {
		id, err := ParsePatronID("123456")
		assert.NoError(t, err)
		assert.Equal(t, PatronID("123456"), id)
	})

	t.Run("rejects malformed ids", func(t *testing.T) {
		for _, raw := range []string{"", "12345", "1234567", "12345a", "abcdef", "12 456"} {
			_, err := ParsePatronID(raw)
			assert.Error(t, err, raw)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest), raw)
			assert.Contains(t, err.Error(), "Invalid patron ID")
		}
	})
}
