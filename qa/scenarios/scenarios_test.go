package scenarios

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		sc, err := Load(f)
		require.NoError(t, err, f)
		t.Run(sc.Name, func(t *testing.T) {
			RunScenario(t, sc)
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load("no-file.yaml")
	assert.Error(t, err)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(":"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("name: x\nsteps:\n  - tool: weather\n"), 0o644))
	_, err = Load(unknown)
	assert.ErrorContains(t, err, "step 0")
}

func TestEqual(t *testing.T) {
	assert.True(t, equal(216.0, 216))
	assert.True(t, equal(9.45, 9.45))
	assert.False(t, equal(9.46, 9.45))
	assert.True(t, equal("poor", "poor"))
	assert.False(t, equal("good", "poor"))
}
