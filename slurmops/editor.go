package slurmops

import (
	"errors"
	"io/fs"
	"os"

	"github.com/google/renameio/v2"
)

// ConfEditor loads and saves one Slurm configuration file. Saves are
// atomic (write to a temporary file, then rename) so daemons re-reading
// the file never observe a partial write.
type ConfEditor struct {
	// Path is the configuration file location
	Path string
	// Mode is the file mode applied on save
	Mode os.FileMode
	// UID and GID own the file after save; -1 leaves ownership alone
	UID int
	GID int
}

// NewConfEditor returns an editor for path with mode 0644 and unchanged
// ownership.
func NewConfEditor(path string) *ConfEditor {
	return &ConfEditor{Path: path, Mode: 0o644, UID: -1, GID: -1}
}

// Load reads and parses the file. A missing file yields an empty ConfFile
// so that a subsequent Save creates it.
func (e *ConfEditor) Load() (*ConfFile, error) {
	data, err := os.ReadFile(e.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ConfFile{}, nil
		}
		return nil, &ConfigError{Path: e.Path, Err: err}
	}
	return ParseConf(data), nil
}

// Save writes the file atomically with the editor's mode and ownership
func (e *ConfEditor) Save(c *ConfFile) error {
	if err := renameio.WriteFile(e.Path, c.Render(), e.Mode); err != nil {
		return &ConfigError{Path: e.Path, Err: err}
	}
	if e.UID >= 0 || e.GID >= 0 {
		if err := os.Chown(e.Path, e.UID, e.GID); err != nil {
			return &ConfigError{Path: e.Path, Err: err}
		}
	}
	return nil
}

// Edit loads the file, applies fn, and saves the result
func (e *ConfEditor) Edit(fn func(*ConfFile)) error {
	c, err := e.Load()
	if err != nil {
		return err
	}
	fn(c)
	return e.Save(c)
}
