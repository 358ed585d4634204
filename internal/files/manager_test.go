package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain group", "GRP_HEIGHTC", "GRP_HEIGHTC"},
		{"path separators", "GRP/HEIGHT\\C", "GRP_HEIGHT_C"},
		{"reserved characters", `A:B*C?D"E<F>G|H`, "A_B_C_D_E_F_G_H"},
		{"whitespace", "  GRP NAME\tX  ", "GRP_NAME_X"},
		{"empty falls back", "", "group"},
		{"only separators fall back to underscores", "///", "___"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeName(tt.in))
		})
	}
}

func TestManager_GroupCSVPath(t *testing.T) {
	m := NewManager("reports")
	assert.Equal(t, filepath.Join("reports", "processed_GRP_LAI.csv"), m.GroupCSVPath("GRP_LAI"))
	assert.Equal(t, filepath.Join("reports", "processed_GRP_A_B.csv"), m.GroupCSVPath("GRP A/B"))
}

func TestManager_DefaultsToWorkingDirectory(t *testing.T) {
	m := NewManager("")
	assert.Equal(t, ".", m.Dir())
	assert.Equal(t, filepath.Join(".", "processed_GA.csv"), m.GroupCSVPath("GA"))
}

func TestManager_EnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	m := NewManager(dir)

	require.NoError(t, m.EnsureDir())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on an existing directory.
	assert.NoError(t, m.EnsureDir())
}
