package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReport(t *testing.T) {
	dir := t.TempDir()
	report := buildTestReport(t)

	paths, err := GenerateReport(report, "json", dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, ".json", filepath.Ext(paths[0]))
	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Test household"`)

	paths, err = GenerateReport(report, "csv-detailed", dir)
	require.NoError(t, err)
	assert.Equal(t, ".csv", filepath.Ext(paths[0]))
}

func TestGenerateReportAll(t *testing.T) {
	paths, err := GenerateReport(buildTestReport(t), "all", t.TempDir())
	require.NoError(t, err)
	assert.Len(t, paths, len(AvailableFormatterNames()))
}

func TestGenerateReportUnknownFormat(t *testing.T) {
	paths, err := GenerateReport(buildTestReport(t), "xlsx", t.TempDir())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Nil(t, paths)
}

func TestRender(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Render(&sb, buildTestReport(t), "lite"))
	assert.True(t, strings.HasPrefix(sb.String(), "WORKSHEET SUMMARY: Test household"))
}
