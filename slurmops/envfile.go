package slurmops

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/google/renameio/v2"
)

// EnvFile manages KEY=value entries in an environment file such as
// /etc/default/slurmd, the file the daemon's unit sources for command-line
// flags. Keys are uppercased on write; unrelated lines survive rewrites.
type EnvFile struct {
	// Path is the environment file location
	Path string
	// Quote wraps values in double quotes on write
	Quote bool
}

// NewEnvFile returns a quoting EnvFile for path
func NewEnvFile(path string) *EnvFile {
	return &EnvFile{Path: path, Quote: true}
}

// Get returns the value for key, unquoting if needed. The second return
// is false when the key is absent.
func (f *EnvFile) Get(key string) (string, bool, error) {
	lines, err := f.load()
	if err != nil {
		return "", false, err
	}
	key = strings.ToUpper(key)
	for _, line := range lines {
		if k, v, ok := splitEnvLine(line); ok && k == key {
			return v, true, nil
		}
	}
	return "", false, nil
}

// Set writes the given variables, replacing existing values and appending
// new keys. All other lines are preserved.
func (f *EnvFile) Set(vars map[string]string) error {
	lines, err := f.load()
	if err != nil {
		return err
	}

	pending := make(map[string]string, len(vars))
	for k, v := range vars {
		pending[strings.ToUpper(k)] = v
	}

	for i, line := range lines {
		k, _, ok := splitEnvLine(line)
		if !ok {
			continue
		}
		if v, hit := pending[k]; hit {
			lines[i] = f.formatEnvLine(k, v)
			delete(pending, k)
		}
	}
	// Append remaining keys in a stable order.
	for _, k := range sortedKeys(pending) {
		lines = append(lines, f.formatEnvLine(k, pending[k]))
	}

	return f.save(lines)
}

// Unset removes key from the file, if present
func (f *EnvFile) Unset(key string) error {
	lines, err := f.load()
	if err != nil {
		return err
	}
	key = strings.ToUpper(key)
	kept := lines[:0]
	for _, line := range lines {
		if k, _, ok := splitEnvLine(line); ok && k == key {
			continue
		}
		kept = append(kept, line)
	}
	return f.save(kept)
}

func (f *EnvFile) load() ([]string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &ConfigError{Path: f.Path, Err: err}
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

func (f *EnvFile) save(lines []string) error {
	var data []byte
	if len(lines) > 0 {
		data = []byte(strings.Join(lines, "\n") + "\n")
	}
	if err := renameio.WriteFile(f.Path, data, 0o644); err != nil {
		return &ConfigError{Path: f.Path, Err: err}
	}
	return nil
}

func (f *EnvFile) formatEnvLine(key, value string) string {
	if f.Quote {
		return key + `="` + value + `"`
	}
	return key + "=" + value
}

// splitEnvLine parses a KEY=value line, stripping surrounding quotes from
// the value. Comments and malformed lines report ok=false.
func splitEnvLine(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	key, value, found := strings.Cut(trimmed, "=")
	if !found || key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
