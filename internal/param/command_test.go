package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input  string
		kind   Kind
		target string
	}{
		{"", KindEmpty, ""},
		{"   ", KindEmpty, ""},
		{"reload", KindReload, ""},
		{"RESTART", KindReload, ""},
		{" Reload ", KindReload, ""},
		{"del width", KindDelete, "width"},
		{"del   width  ", KindDelete, "width"},
		{"del ", KindInvalid, ""},
		{"del", KindInvalid, ""},
		{"delete width", KindInvalid, ""},
		{"w=10mm", KindSet, ""},
		{"width = 10 mm", KindSet, ""},
		{"=10", KindInvalid, ""},
		{"width", KindInvalid, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := Classify(tt.input)
			assert.Equal(t, tt.kind, cmd.Kind, "kind for %q", tt.input)
			assert.Equal(t, tt.target, cmd.Target)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "set", KindSet.String())
	assert.Equal(t, "delete", KindDelete.String())
	assert.Equal(t, "reload", KindReload.String())
	assert.Equal(t, "empty", KindEmpty.String())
	assert.Equal(t, "invalid", KindInvalid.String())
}
