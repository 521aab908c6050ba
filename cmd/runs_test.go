package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coastline-analytics/crimeplot/internal/model"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC)
	runs := []model.Run{
		{
			ID:       "abc12345-6789-0000-0000-000000000000",
			Pipeline: "plots",
			City:     "van",
			Status:   model.RunStatusComplete,
			Artifacts: []model.Artifact{
				{Kind: "boxplot", Path: "initial_plots/van/van_boxplot.png"},
				{Kind: "histogram", Path: "initial_plots/van/van_hist.png"},
			},
			CreatedAt: now,
			UpdatedAt: now.Add(45 * time.Second),
		},
		{
			ID:        "def12345-6789-0000-0000-000000000000",
			Pipeline:  "choropleth",
			City:      "van",
			Status:    model.RunStatusFailed,
			Error:     "dataset missing",
			CreatedAt: now.Add(-1 * time.Hour),
			UpdatedAt: now.Add(-59 * time.Minute),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "PIPELINE")
	assert.Contains(t, output, "STATUS")
	assert.Contains(t, output, "plots")
	assert.Contains(t, output, "complete")
	assert.Contains(t, output, "choropleth")
	assert.Contains(t, output, "failed")
	assert.Contains(t, output, "2026-03-10 09:15")
	assert.Contains(t, output, "abc12345")
	assert.NotContains(t, output, "abc12345-6789", "IDs are truncated for display")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abcdefgh", truncateID("abcdefgh-1234"))
	assert.Equal(t, "short", truncateID("short"))
}
