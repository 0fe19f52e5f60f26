package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnpack2(t *testing.T) {
	a, b := Unpack2([]string{"clone", "Copy", "extra"})
	assert.Equal(t, "clone", a)
	assert.Equal(t, "Copy", b)

	a, b = Unpack2([]string{"flat"})
	assert.Equal(t, "flat", a)
	assert.Empty(t, b)

	a, b = Unpack2([]string(nil))
	assert.Empty(t, a)
	assert.Empty(t, b)
}
