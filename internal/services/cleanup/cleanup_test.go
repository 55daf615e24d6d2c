package cleanup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	return path
}

func TestSweep(t *testing.T) {
	dir := t.TempDir()

	oldSpool := writeFile(t, dir, "upload-abc123.mp3", 2*time.Hour)
	freshSpool := writeFile(t, dir, "upload-def456.wav", time.Minute)
	unrelated := writeFile(t, dir, "notes.txt", 48*time.Hour)

	svc := NewService(dir, time.Hour, time.Minute)
	svc.Sweep()

	_, err := os.Stat(oldSpool)
	assert.True(t, os.IsNotExist(err), "stale spool file should be removed")

	_, err = os.Stat(freshSpool)
	assert.NoError(t, err, "fresh spool file must survive")

	_, err = os.Stat(unrelated)
	assert.NoError(t, err, "files without the spool prefix must survive")
}

func TestSweepMissingDir(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "missing"), time.Hour, time.Minute)
	// must not panic
	svc.Sweep()
}
