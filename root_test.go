package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SEED_SOURCE", "embedded")
	t.Setenv("CURRENCY", "USD")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStatsCmd(t *testing.T) {
	out, err := runRoot(t, "stats")
	require.NoError(t, err)

	assert.Contains(t, out, "Total employees: 4")
	assert.Contains(t, out, "Average salary:  $2,750.00")
	assert.Contains(t, out, "Average age:     34")
	assert.Contains(t, out, "Locations:       4")
	assert.Contains(t, out, "Departments:     Engineering, Design, Marketing, Sales")
}

func TestExportCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.xlsx")

	out, err := runRoot(t, "export", "-o", path, "--sort", "salary", "--sort", "salary")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 4 employees")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	top, err := f.GetCellValue("Directory", "B13")
	require.NoError(t, err)
	assert.Equal(t, "Cecil", top)
}

func TestExportCmd_Filtered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.xlsx")

	out, err := runRoot(t, "export", "--output", path, "--department", "Design", "--search", "jon")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 1 employees")
}

func TestExportCmd_Errors(t *testing.T) {
	_, err := runRoot(t, "export")
	assert.ErrorContains(t, err, "--output")

	_, err = runRoot(t, "export", "-o", filepath.Join(t.TempDir(), "x.xlsx"), "--sort", "image")
	assert.Error(t, err)
}
