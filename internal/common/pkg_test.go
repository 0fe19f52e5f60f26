package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	tests := map[string]string{
		"":                             "",
		"time":                         "time",
		"deepgraph/examples/ledger":    "ledger",
		"github.com/google/go-cmp/cmp": "cmp",
		"example.com/lib/v2":           "lib",
		"v2":                           "v2",
		"example.com/lib/vx":           "vx",
	}
	for in, want := range tests {
		assert.Equal(t, want, PkgAlias(in), in)
	}
}
