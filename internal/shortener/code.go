package shortener

import (
	"crypto/sha256"
	"encoding/hex"
)

// CodeLength is the number of trailing hex digest characters kept as the code.
const CodeLength = 6

// DeriveCode returns the short code for longURL: the last CodeLength characters
// of the lowercase hex SHA-256 digest of its bytes.
//
// Distinct URLs can collide (16^6 codes). Collisions are not retried; the
// store's unique index on the code rejects the second insert.
func DeriveCode(longURL string) Code {
	sum := sha256.Sum256([]byte(longURL))
	digest := hex.EncodeToString(sum[:])

	return Code(digest[len(digest)-CodeLength:])
}
