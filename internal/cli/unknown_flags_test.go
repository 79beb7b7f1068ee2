package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownFlagIsUsageErrorWithHelp(t *testing.T) {
	err := execRoot(t, "generate", "--no-such-flag")
	require.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "unknown flag")
	assert.Contains(t, err.Error(), "Usage:")
}

func TestUnknownFlagOnRoot(t *testing.T) {
	err := execRoot(t, "--no-such-flag")
	require.ErrorIs(t, err, ErrUsage)
}

func TestUnknownSubcommand(t *testing.T) {
	err := execRoot(t, "frobnicate")
	assert.Error(t, err)
}
