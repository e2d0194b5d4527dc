// Package credential hashes the password captured on the public sign-up
// form so the raw value is never stored alongside a pending access request.
//
// The digest is a bare SHA-256 hex string: no salt, no iteration count.
// That is a known weakness of the scheme the stored data already uses, and
// changing it would invalidate every pending request, so it is kept as-is
// and called out here instead of being silently upgraded.
package credential

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the lowercase hex SHA-256 digest of password. It is a pure
// function: an empty password still hashes, and no length floor is enforced
// here. Length validation belongs to the caller's input binding.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
