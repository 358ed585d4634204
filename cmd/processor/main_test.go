package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"amfcli/internal/config"
)

func TestApplyOverrides(t *testing.T) {
	base := func() *config.Config {
		return &config.Config{
			Input:  config.InputConfig{Path: "default.xlsx", Sheet: "AMF-BIF"},
			Output: config.OutputConfig{Dir: ".", Workers: 1},
		}
	}

	tests := []struct {
		name    string
		inPath  string
		sheet   string
		outDir  string
		workers int
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "no flags keeps config",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "default.xlsx", cfg.Input.Path)
				assert.Equal(t, "AMF-BIF", cfg.Input.Sheet)
				assert.Equal(t, ".", cfg.Output.Dir)
				assert.Equal(t, 1, cfg.Output.Workers)
			},
		},
		{
			name:   "input path override",
			inPath: "other.xlsx",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "other.xlsx", cfg.Input.Path)
			},
		},
		{
			name:  "sheet override",
			sheet: "AMF-BIF-2",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "AMF-BIF-2", cfg.Input.Sheet)
			},
		},
		{
			name:    "output dir and workers override",
			outDir:  "reports",
			workers: 4,
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "reports", cfg.Output.Dir)
				assert.Equal(t, 4, cfg.Output.Workers)
			},
		},
		{
			name:    "non-positive workers ignored",
			workers: -2,
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 1, cfg.Output.Workers)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			applyOverrides(cfg, tt.inPath, tt.sheet, tt.outDir, tt.workers)
			tt.check(t, cfg)
		})
	}
}
