package ansi_test

import (
	"testing"

	"github.com/CoderFake/ragchat/ansi"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text is unchanged", "hello world", "hello world"},
		{"markdown is unchanged", "# Title\n\n- item\t`code`", "# Title\n\n- item\t`code`"},
		{"colour codes", "\x1b[31mred\x1b[0m", "red"},
		{"title-setting OSC", "\x1b]0;pwned\x07answer", "answer"},
		{"control characters", "a\x01b\x07c\x7f", "abc"},
		{"CRLF becomes LF", "a\r\nb\r\n", "a\nb\n"},
		{"lone CR is dropped", "a\rb", "ab"},
		{"unicode is kept", "Tiếng Việt 😀", "Tiếng Việt 😀"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ansi.Sanitize(tt.in))
		})
	}
}

func TestLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Annual report 2024", ansi.Line("  Annual\nreport\t\x1b[1m2024\x1b[0m "))
	assert.Equal(t, "", ansi.Line("\x1b[0m"))
}
