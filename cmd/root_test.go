package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Helper()

	debug, silent = false, false
	frequency, timeout = 30, 5

	t.Cleanup(func() {
		debug, silent = false, false
		frequency, timeout = 30, 5
	})
}

func TestValidateFlagsDefaults(t *testing.T) {
	resetFlags(t)

	assert.NoError(t, validateFlags())
}

func TestDebugAndSilentAreMutuallyExclusive(t *testing.T) {
	resetFlags(t)

	debug, silent = true, true
	require.Error(t, validateFlags())
}

func TestFrequencyMustBePositive(t *testing.T) {
	resetFlags(t)

	frequency = 0
	require.Error(t, validateFlags())

	frequency = -1
	require.Error(t, validateFlags())
}

func TestTimeoutMustBePositive(t *testing.T) {
	resetFlags(t)

	timeout = 0
	require.Error(t, validateFlags())
}

func TestRecoveryCommandIsRequired(t *testing.T) {
	require.Error(t, rootCmd.Args(rootCmd, []string{}))
	assert.NoError(t, rootCmd.Args(rootCmd, []string{"systemctl", "restart", "rsyslog"}))
}
