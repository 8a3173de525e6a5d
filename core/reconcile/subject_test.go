package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSubject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "Hello World", "hello world"},
		{"Whitespace", "  Hello  ", "hello"},
		{"Reply", "Re: Hello", "hello"},
		{"Stacked", "RE: FW: Fwd: Hello", "hello"},
		{"German", "AW: Antw: Meeting", "meeting"},
		{"Numbered", "Re[2]: Hello", "hello"},
		{"NumberedSpaced", "re [3] : topic", "topic"},
		{"NoSpaceAfterColon", "re:re:hello", "hello"},
		{"OnlyPrefixes", "Re: Fw: re:  fwd:", ""},
		{"WordStartingWithRe", "Refund: money back", "refund: money back"},
		{"Reply word", "Reply: x", "reply: x"},
		{"PrefixNotAtStart", "Hello re: there", "hello re: there"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSubject(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeSubject(got), "normalization must be idempotent")
		})
	}
}
