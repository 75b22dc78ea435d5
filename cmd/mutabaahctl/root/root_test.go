package root

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWeeksCommand(t *testing.T) {
	out, err := run(t, "weeks", "--month", "2026-03")
	require.NoError(t, err)
	for _, span := range []string{"1-8", "9-15", "16-22", "23-31"} {
		assert.Contains(t, out, span)
	}

	_, err = run(t, "weeks", "--month", "March")
	assert.Error(t, err)

	_, err = run(t, "weeks")
	assert.Error(t, err, "--month is required")
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "TRIGGER")

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`categories: [Ibadah]
activities:
  - id: subuh
    title: Shalat Subuh
    category: Ibadah
    monthly_target: 20
`), 0o644))
	out, err = run(t, "catalog", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Shalat Subuh")
	assert.Contains(t, out, "checklist")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`categories: [Ibadah]
activities:
  - id: subuh
    title: Shalat Subuh
    category: Unknown
    monthly_target: 20
`), 0o644))
	_, err = run(t, "catalog", "--file", bad)
	assert.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "mutabaahctl dev\n", out)
}
