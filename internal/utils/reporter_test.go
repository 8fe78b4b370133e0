package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/RecoveryAshes/ema-blocklist/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	report := models.NewRunReport("https://example.com/api")
	report.Stats.IPs = 2
	report.NoContent = false
	report.Finish()

	path, err := NewReporter(dir).Save(report)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ReportFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var restored models.RunReport
	require.NoError(t, restored.FromJSON(data))
	assert.Equal(t, report.RunID, restored.RunID)
	assert.Equal(t, 2, restored.Stats.IPs)
}

func TestNewProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, 3, "classifying")
	for i := 0; i < 3; i++ {
		require.NoError(t, bar.Add(1))
	}
	require.NoError(t, bar.Finish())
	assert.True(t, bar.IsFinished())
	assert.Contains(t, buf.String(), "classifying")
}
