package settings

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHostnamePrompt_NonTerminal(t *testing.T) {
	prompt := NewHostnamePrompt(strings.NewReader(""), &bytes.Buffer{})

	_, ok := prompt.(*LinePrompt)
	assert.True(t, ok)
}

func TestLinePrompt_Hostname(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "line", input: "labdb.example.org\n", want: "labdb.example.org"},
		{name: "no trailing newline", input: "labdb.example.org", want: "labdb.example.org"},
		{name: "padded", input: "  labdb.example.org  \r\n", want: "labdb.example.org"},
		{name: "end of input", input: "", want: ""},
		{name: "only first line", input: "one.example.org\ntwo.example.org\n", want: "one.example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			prompt := &LinePrompt{In: strings.NewReader(tt.input), Out: &out}

			got, err := prompt.Hostname()

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), hostnameTitle)
		})
	}
}

func TestLinePrompt_LeavesRemainingInput(t *testing.T) {
	in := strings.NewReader("labdb.example.org\ny\n")
	prompt := &LinePrompt{In: in, Out: &bytes.Buffer{}}

	got, err := prompt.Hostname()
	require.NoError(t, err)
	assert.Equal(t, "labdb.example.org", got)

	rest, err := io.ReadAll(in)
	require.NoError(t, err)
	assert.Equal(t, "y\n", string(rest))
}
