package rtfde

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEscapedControlChars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"backslash", `a\\b`, `a\'5cb`},
		{"open brace", `a\{b`, `a\'7bb`},
		{"close brace", `a\}b`, `a\'7db`},
		{"genuine control word untouched", `\par`, `\par`},
		{"mixed", `\{hi\}\\`, `\'7bhi\'7d\'5c`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeEscapedControlChars([]byte(tc.in))
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestNormalizeEscapedControlChars_Idempotent(t *testing.T) {
	in := []byte(`a\\b\{c\}d`)
	once := normalizeEscapedControlChars(in)
	assert.True(t, isAlreadyNormalized(once))
}
