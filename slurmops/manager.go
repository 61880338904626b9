package slurmops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
)

// Default configuration directories per install method.
const (
	// DefaultConfDir is where distro-packaged daemons read configuration
	DefaultConfDir = "/etc/slurm"
	// DefaultSnapConfDir is the slurm snap's configuration directory
	DefaultSnapConfDir = "/var/snap/slurm/common/etc/slurm"
)

// Manager brings one Slurm daemon's installation, configuration, and
// process state to the caller's desired state. It holds no state of its
// own between calls; see the package documentation for the operational
// model.
type Manager struct {
	service Service
	method  InstallMethod
	runner  Runner
	logger  *slog.Logger
	confDir string

	control ServiceController
	inst    installer
}

// Option configures a Manager
type Option func(*Manager)

// WithRunner sets the command runner, normally to a test double
func WithRunner(r Runner) Option {
	return func(m *Manager) {
		m.runner = r
	}
}

// WithLogger sets the logger used for command tracing
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithConfDir overrides the configuration directory
func WithConfDir(dir string) Option {
	return func(m *Manager) {
		m.confDir = dir
	}
}

// New creates a Manager for the given daemon and install method.
// MethodUnknown defaults to MethodAPT.
func New(service Service, method InstallMethod, opts ...Option) *Manager {
	if method == MethodUnknown {
		method = MethodAPT
	}

	m := &Manager{
		service: service,
		method:  method,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.runner == nil {
		m.runner = &ExecRunner{Logger: m.logger}
	}

	switch m.method {
	case MethodSnap:
		m.control = NewSnapController(service, m.runner)
		m.inst = &snapInstaller{runner: m.runner}
		if m.confDir == "" {
			m.confDir = DefaultSnapConfDir
		}
	default:
		m.control = NewSystemdController(service.unitName(), m.runner)
		m.inst = &aptInstaller{service: service, runner: m.runner}
		if m.confDir == "" {
			m.confDir = DefaultConfDir
		}
	}
	return m
}

// Service returns the daemon this manager controls
func (m *Manager) Service() Service {
	return m.service
}

// Method returns the manager's installation backend
func (m *Manager) Method() InstallMethod {
	return m.method
}

// Install brings the host to the requested installation state. It is
// idempotent: when the backend reports the component already installed and
// the version constraint satisfied, no package mutation occurs. A spec
// whose method disagrees with the manager's backend is rejected rather
// than silently re-targeted.
func (m *Manager) Install(ctx context.Context, spec InstallSpec) error {
	method := spec.Method
	if method == MethodUnknown {
		method = m.method
	}
	if method != m.method {
		return &InstallError{Method: method, Err: ErrMethodConflict}
	}

	installed, err := m.inst.Installed(ctx)
	if err != nil {
		return &InstallError{Method: method, Err: err}
	}

	if !installed {
		m.logger.Info("installing", "service", m.service.String(), "method", method.String())
		if err := m.inst.Install(ctx, spec.Version); err != nil {
			return &InstallError{Method: method, Err: err}
		}
		return nil
	}

	version, err := m.inst.InstalledVersion(ctx)
	if err != nil {
		return &InstallError{Method: method, Err: err}
	}
	if versionSatisfies(version, spec.Version) {
		return nil
	}

	m.logger.Info("upgrading", "service", m.service.String(),
		"installed", version, "requested", spec.Version)
	if err := m.inst.Upgrade(ctx, spec.Version); err != nil {
		return &InstallError{Method: method, Err: err}
	}
	return nil
}

// Version returns the installed version of the managed component.
// ErrNotInstalled (wrapped in *InstallError) means nothing is installed; a
// *ServiceError means the query itself could not run.
func (m *Manager) Version(ctx context.Context) (string, error) {
	version, err := m.inst.InstalledVersion(ctx)
	if err != nil {
		if errors.Is(err, ErrNotInstalled) {
			return "", &InstallError{Method: m.method, Err: err}
		}
		return "", &ServiceError{Service: m.service.String(), Op: "version", Err: err}
	}
	return version, nil
}

// Editor returns the configuration editor for section, with the file mode
// the daemon expects.
func (m *Manager) Editor(section string) (*ConfEditor, error) {
	name, ok := sectionFiles[section]
	if !ok {
		return nil, &ConfigError{
			Path: section,
			Err:  fmt.Errorf("%w: %q", ErrUnknownSection, section),
		}
	}
	editor := NewConfEditor(filepath.Join(m.confDir, name))
	// Files carrying credentials must not be world readable.
	if section == SectionSlurmdbd || section == SectionAcctGather {
		editor.Mode = 0o600
	}
	return editor, nil
}

// Configure sets a single key in the given section's file, preserving
// every entry it does not name.
func (m *Manager) Configure(section, key, value string) error {
	editor, err := m.Editor(section)
	if err != nil {
		return err
	}
	return editor.Edit(func(c *ConfFile) {
		c.Set(key, value)
	})
}

// ConfigureMany applies a section -> key -> value mapping. Each section's
// file is rewritten once. Sections are applied in sorted order; a failure
// leaves earlier sections applied, which callers remediate by retrying.
func (m *Manager) ConfigureMany(config map[string]map[string]string) error {
	sections := make([]string, 0, len(config))
	for section := range config {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	for _, section := range sections {
		editor, err := m.Editor(section)
		if err != nil {
			return err
		}
		entries := config[section]
		keys := make([]string, 0, len(entries))
		for key := range entries {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		err = editor.Edit(func(c *ConfFile) {
			for _, key := range keys {
				c.Set(key, entries[key])
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ConfigValue reads back a single key from the given section's file
func (m *Manager) ConfigValue(section, key string) (string, bool, error) {
	editor, err := m.Editor(section)
	if err != nil {
		return "", false, err
	}
	c, err := editor.Load()
	if err != nil {
		return "", false, err
	}
	value, ok := c.Get(key)
	return value, ok, nil
}

// Env returns the daemon's /etc/default environment file
func (m *Manager) Env() *EnvFile {
	return NewEnvFile(m.service.envFilePath())
}

// Start starts the managed daemon
func (m *Manager) Start(ctx context.Context) error {
	return m.control.Start(ctx)
}

// Stop stops the managed daemon
func (m *Manager) Stop(ctx context.Context) error {
	return m.control.Stop(ctx)
}

// Restart restarts the managed daemon
func (m *Manager) Restart(ctx context.Context) error {
	return m.control.Restart(ctx)
}

// Enable enables the managed daemon at boot
func (m *Manager) Enable(ctx context.Context) error {
	return m.control.Enable(ctx)
}

// Disable disables the managed daemon at boot
func (m *Manager) Disable(ctx context.Context) error {
	return m.control.Disable(ctx)
}

// IsActive reports whether the managed daemon is running right now. An
// inactive daemon is false with a nil error.
func (m *Manager) IsActive(ctx context.Context) (bool, error) {
	return m.control.IsActive(ctx)
}

// Munge returns a munge key manager sharing this manager's backend
func (m *Manager) Munge() *MungeManager {
	return NewMungeManager(m.method, m.runner)
}
