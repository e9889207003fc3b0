package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken returns the hex sha256 digest of a bearer token. Sessions store
// only the digest so a leaked database never yields usable tokens.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
