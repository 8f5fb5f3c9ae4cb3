package framework

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertExitCode(t *testing.T, output string, got, want int) {
	t.Helper()
	assert.Equal(t, want, got, "unexpected exit status, output:\n%s", output)
}

func AssertOutputContains(t *testing.T, output, expected string) {
	t.Helper()
	assert.Contains(t, output, expected, "Expected output containing '%s', got: %s", expected, output)
}

func AssertOutputNotContains(t *testing.T, output, unexpected string) {
	t.Helper()
	assert.NotContains(t, output, unexpected, "Expected output without '%s', got: %s", unexpected, output)
}

func AssertHelpfulError(t *testing.T, output string) {
	t.Helper()

	helpfulElements := []string{
		"Solutions:",
		"Solution:",
		"Cause:",
		"Tip:",
		"•",
		"Examples:",
		"Usage:",
	}

	for _, element := range helpfulElements {
		if strings.Contains(output, element) {
			return
		}
	}
	t.Errorf("Error message does not appear to be helpful. Got: %s", output)
}

func AssertMultipleStringsInOutput(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, exp := range expected {
		assert.Contains(t, output, exp, "Expected output to contain '%s', got: %s", exp, output)
	}
}

// AssertCommandOrder checks that each command marker appears after the
// previous one.
func AssertCommandOrder(t *testing.T, output string, commands []string) {
	t.Helper()
	pos := 0
	for _, c := range commands {
		idx := strings.Index(output[pos:], "--> "+c)
		if idx < 0 {
			t.Errorf("Expected command '%s' after position %d, got: %s", c, pos, output)
			return
		}
		pos += idx + len(c)
	}
}

func AssertSucceeded(t *testing.T, output string, code int) {
	t.Helper()
	AssertExitCode(t, output, code, 0)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(output), "OK"), "Expected run to end with OK, got: %s", output)
}
