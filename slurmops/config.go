package slurmops

import (
	"strings"
)

// Configuration sections understood by the managers. Each section maps to
// one of the files the Slurm daemons read at start.
const (
	// SectionSlurm is the main slurm.conf
	SectionSlurm = "slurm"
	// SectionSlurmdbd is the accounting daemon's slurmdbd.conf
	SectionSlurmdbd = "slurmdbd"
	// SectionCgroup is cgroup.conf
	SectionCgroup = "cgroup"
	// SectionGres is the generic resource file gres.conf
	SectionGres = "gres"
	// SectionAcctGather is acct_gather.conf
	SectionAcctGather = "acct_gather"
)

// sectionFiles maps a section to its file name under the config directory.
var sectionFiles = map[string]string{
	SectionSlurm:      "slurm.conf",
	SectionSlurmdbd:   "slurmdbd.conf",
	SectionCgroup:     "cgroup.conf",
	SectionGres:       "gres.conf",
	SectionAcctGather: "acct_gather.conf",
}

// confLine is one line of a Slurm configuration file. Lines that are not
// simple Key=Value entries (comments, blanks, Include directives, node and
// partition definitions) keep their raw text and are passed through
// verbatim on render.
type confLine struct {
	raw   string
	key   string
	value string
}

func (l *confLine) isEntry() bool {
	return l.key != ""
}

// ConfFile is an in-memory Slurm configuration file in the native
// Key=Value format. It preserves line order, comments, and entries it does
// not recognize, so a load-modify-save round trip only touches the keys
// the caller changed. Keys are matched case-insensitively, following Slurm
// parser semantics; the spelling already in the file wins on update.
//
// ConfFile does not validate option names or values. Unknown keys are
// written verbatim and left for the daemon to reject.
type ConfFile struct {
	lines []confLine
}

// ParseConf parses data as a Slurm configuration file. It never fails:
// lines that cannot be interpreted as entries are carried verbatim.
func ParseConf(data []byte) *ConfFile {
	c := &ConfFile{}
	if len(data) == 0 {
		return c
	}

	text := strings.TrimSuffix(string(data), "\n")
	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			c.lines = append(c.lines, confLine{raw: raw})
			continue
		}
		// Include directives and multi-attribute lines (NodeName=... CPUs=...)
		// are not single entries; pass them through untouched.
		if strings.HasPrefix(strings.ToLower(trimmed), "include ") || strings.ContainsAny(trimmed, " \t") {
			c.lines = append(c.lines, confLine{raw: raw})
			continue
		}
		key, value, ok := strings.Cut(trimmed, "=")
		if !ok || key == "" {
			c.lines = append(c.lines, confLine{raw: raw})
			continue
		}
		c.lines = append(c.lines, confLine{key: key, value: value})
	}
	return c
}

// Get returns the value for key, matched case-insensitively
func (c *ConfFile) Get(key string) (string, bool) {
	for i := range c.lines {
		if c.lines[i].isEntry() && strings.EqualFold(c.lines[i].key, key) {
			return c.lines[i].value, true
		}
	}
	return "", false
}

// Set updates key in place, or appends it when absent. An existing entry
// keeps its position and spelling.
func (c *ConfFile) Set(key, value string) {
	for i := range c.lines {
		if c.lines[i].isEntry() && strings.EqualFold(c.lines[i].key, key) {
			c.lines[i].value = value
			return
		}
	}
	c.lines = append(c.lines, confLine{key: key, value: value})
}

// Unset removes key from the file, reporting whether it was present
func (c *ConfFile) Unset(key string) bool {
	for i := range c.lines {
		if c.lines[i].isEntry() && strings.EqualFold(c.lines[i].key, key) {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Keys returns the entry keys in file order
func (c *ConfFile) Keys() []string {
	var keys []string
	for i := range c.lines {
		if c.lines[i].isEntry() {
			keys = append(keys, c.lines[i].key)
		}
	}
	return keys
}

// Render serializes the file, always ending with a newline when non-empty
func (c *ConfFile) Render() []byte {
	if len(c.lines) == 0 {
		return nil
	}

	var sb strings.Builder
	for i := range c.lines {
		if c.lines[i].isEntry() {
			sb.WriteString(c.lines[i].key)
			sb.WriteByte('=')
			sb.WriteString(c.lines[i].value)
		} else {
			sb.WriteString(c.lines[i].raw)
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}
