package files

import (
	"os"
	"path/filepath"
	"strings"
)

// outputPrefix is prepended to every generated group file.
const outputPrefix = "processed_"

// Manager resolves output locations for generated group CSVs.
type Manager struct {
	dir string
}

// NewManager creates a file manager rooted at the given output directory.
func NewManager(dir string) *Manager {
	if dir == "" {
		dir = "."
	}
	return &Manager{dir: dir}
}

// Dir returns the output directory.
func (m *Manager) Dir() string {
	return m.dir
}

// EnsureDir creates the output directory with all parents.
func (m *Manager) EnsureDir() error {
	return os.MkdirAll(m.dir, 0755)
}

// GroupCSVPath returns the output path for one variable group,
// processed_<group>.csv inside the output directory.
func (m *Manager) GroupCSVPath(group string) string {
	return filepath.Join(m.dir, outputPrefix+SafeName(group)+".csv")
}

// SafeName turns a variable group value into a usable file name component.
// Path separators and characters that are reserved on common filesystems
// become underscores, as does whitespace; an empty result falls back to
// "group" so a blank VARIABLE_GROUP still produces a distinct file.
func SafeName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteRune('_')
		case r < 0x20:
			b.WriteRune('_')
		case r == ' ' || r == '\t':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "group"
	}
	return b.String()
}
