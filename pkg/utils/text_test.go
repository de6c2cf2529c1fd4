package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hel", Truncate("hello", 3))
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "", Truncate("hello", 0))
	assert.Equal(t, "hél", Truncate("héllo", 3), "cuts runes, not bytes")
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "hel...", TruncateWithEllipsis("hello", 3))
	assert.Equal(t, "hello", TruncateWithEllipsis("hello", 5))
	assert.Equal(t, "hello", TruncateWithEllipsis("hello", 10))
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeSpace("  a\t b \n c  "))
	assert.Equal(t, "", NormalizeSpace("   "))
}
