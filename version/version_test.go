package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, "dev", info.Version)
	assert.Contains(t, info.Platform, "/")
	assert.True(t, strings.HasPrefix(info.GoVersion, "go"))
}

func TestString(t *testing.T) {
	info := Get()
	assert.Contains(t, info.String(), "motifminer")
}

func TestShort(t *testing.T) {
	info := Info{CommitHash: "abcdef0123456789"}
	assert.Equal(t, "abcdef0", info.Short())
	assert.Equal(t, "abc", Info{CommitHash: "abc"}.Short())
}
