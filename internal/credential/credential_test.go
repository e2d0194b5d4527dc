package credential_test

import (
	"testing"

	"go-hradmin/internal/credential"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, credential.Hash("Secret123!"), credential.Hash("Secret123!"))
	})

	t.Run("known digest", func(t *testing.T) {
		// sha256("password") -- fixed vector so a scheme change is caught
		assert.Equal(t,
			"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
			credential.Hash("password"),
		)
	})

	t.Run("empty password still hashes", func(t *testing.T) {
		assert.Equal(t,
			"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
			credential.Hash(""),
		)
	})

	t.Run("distinct inputs distinct digests", func(t *testing.T) {
		assert.NotEqual(t, credential.Hash("a"), credential.Hash("b"))
	})
}
