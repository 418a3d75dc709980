package utils

import (
	"crypto/md5"
	"fmt"
	"strings"
)

const defaultAvatarSize = 200

// GravatarURL generates a Gravatar URL for the given email address.
// Falls back to the "mystery person" placeholder for unknown addresses.
func GravatarURL(email string, size int) string {
	if size <= 0 {
		size = defaultAvatarSize
	}

	email = strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(email))

	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d&d=mp", hash, size)
}
