package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURL(t *testing.T) {
	// md5 of the lowercased address
	assert.Equal(t,
		"https://www.gravatar.com/avatar/55502f40dc8b7c769880b10874abc9d0?s=300&r=pg&d=mm",
		GravatarURL("test@example.com"))
}

func TestGravatarURLNormalizesEmail(t *testing.T) {
	assert.Equal(t, GravatarURL("dev@devlink.dev"), GravatarURL("  Dev@DevLink.Dev  "))
}
