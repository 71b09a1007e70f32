package recovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exoscale/syslog-canary/pkg/recovery"
)

func TestInvokerRunsCommandToCompletion(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "recovered")

	inv, err := recovery.New([]string{"/bin/sh", "-c", "touch " + marker})
	require.NoError(t, err)
	require.NoError(t, inv.Recover())

	_, err = os.Stat(marker)
	assert.NoError(t, err, "the command must have run before Recover returns")
}

func TestInvokerReportsNonZeroExit(t *testing.T) {
	inv, err := recovery.New([]string{"/bin/sh", "-c", "exit 3"})
	require.NoError(t, err)

	err = inv.Recover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestInvokerReportsStartFailure(t *testing.T) {
	inv, err := recovery.New([]string{"/nonexistent/recovery-command"})
	require.NoError(t, err)

	require.Error(t, inv.Recover())
}

func TestEmptyCommandIsRejected(t *testing.T) {
	_, err := recovery.New(nil)
	require.Error(t, err)
}
