package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// GravatarURL returns the gravatar image URL for an email address.
// Deterministic: same email, same URL. 300px, pg rating, "mystery man"
// fallback when the address has no gravatar.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=300&r=pg&d=mm"
}
