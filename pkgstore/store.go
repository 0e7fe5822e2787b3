package pkgstore

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ardnew/plx/log"
	"github.com/ardnew/plx/pkg"
)

var (
	// ErrNotFound is returned for a package the catalogue does not hold.
	ErrNotFound = pkg.MakeErrorf("package not found in registry")
	// ErrInstall is returned when an install is interrupted.
	ErrInstall = pkg.MakeErrorf("install interrupted")
)

// DefaultStepDelay is the pause after each install progress step.
const DefaultStepDelay = 100 * time.Millisecond

// Type is the distribution format of a package.
type Type string

const (
	TypeKit      Type = "k!t"
	TypePlx      Type = "plx"
	TypeManifest Type = "mf"
)

// Package describes one installable package.
type Package struct {
	Name         string   `json:"name"                   yaml:"name"`
	Version      string   `json:"version"                yaml:"version"`
	Source       string   `json:"source"                 yaml:"source"`
	Type         Type     `json:"type"                   yaml:"type"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Description  string   `json:"description,omitempty"  yaml:"description,omitempty"`
}

// File returns the package file name, such as "blender.k!t".
func (p Package) File() string { return p.Name + "." + string(p.Type) }

// KnownPackages returns the packages every new [Store] starts with when no
// catalogue is given.
func KnownPackages() []Package {
	return []Package{
		{"blender", "1.0.0", "blender.org/NCOM", TypeKit, nil, "Blender 3D modeling and animation software"},
		{"photoshop", "1.0.0", "adobe.com/NCOM", TypeKit, nil, "Adobe Photoshop image editing software"},
		{"vscode", "1.0.0", "code.visualstudio.com/NCOM", TypeKit, nil, "Visual Studio Code editor"},
		{"chrome", "1.0.0", "google.com/NCOM", TypeKit, nil, "Google Chrome web browser"},
		{"unity", "1.0.0", "unity.com/NCOM", TypeKit, nil, "Unity game engine"},
		{"unreal", "1.0.0", "unrealengine.com/NCOM", TypeKit, nil, "Unreal Engine game engine"},
	}
}

// Store tracks a package catalogue and the packages installed from it.
// Package names are case-insensitive. A Store is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	order     []string
	catalogue map[string]Package
	installed map[string]bool
	delay     time.Duration
	logger    log.Logger
}

// New returns a store over catalogue, or over [KnownPackages] if catalogue
// is empty. Nothing is installed.
func New(catalogue ...Package) *Store {
	if len(catalogue) == 0 {
		catalogue = KnownPackages()
	}

	s := &Store{
		catalogue: make(map[string]Package, len(catalogue)),
		installed: make(map[string]bool),
		delay:     DefaultStepDelay,
	}

	for _, p := range catalogue {
		s.add(p)
	}

	return s
}

// SetStepDelay sets the pause after each install progress step.
func (s *Store) SetStepDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.delay = d
}

// SetLogger sets the logger that receives install records.
func (s *Store) SetLogger(l log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger = l
}

func key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// Available reports whether the catalogue holds name.
func (s *Store) Available(name string) bool {
	_, ok := s.Info(name)

	return ok
}

// Installed reports whether name has been installed.
func (s *Store) Installed(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.installed[key(name)]
}

// Info returns the catalogue entry of name.
func (s *Store) Info(name string) (Package, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.catalogue[key(name)]
	if ok {
		p.Dependencies = slices.Clone(p.Dependencies)
	}

	return p, ok
}

// Status summarizes what a store knows about one package.
type Status struct {
	Exists    bool     `json:"exists"            yaml:"exists"`
	Installed bool     `json:"installed"         yaml:"installed"`
	Available bool     `json:"available"         yaml:"available"`
	Package   *Package `json:"package,omitempty" yaml:"package,omitempty"`
}

// Check reports whether name is installed or available.
func (s *Store) Check(name string) Status {
	st := Status{Installed: s.Installed(name)}

	if p, ok := s.Info(name); ok {
		st.Available, st.Package = true, &p
	}

	st.Exists = st.Installed || st.Available

	return st
}

// Add puts p in the catalogue, replacing any entry of the same name.
func (s *Store) Add(p Package) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.add(p)
}

func (s *Store) add(p Package) {
	k := key(p.Name)
	if _, ok := s.catalogue[k]; !ok {
		s.order = append(s.order, k)
	}

	p.Dependencies = slices.Clone(p.Dependencies)
	s.catalogue[k] = p
}

// All returns the catalogue in the order packages were first added.
func (s *Store) All() []Package {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Package, len(s.order))
	for i, k := range s.order {
		out[i] = s.catalogue[k]
		out[i].Dependencies = slices.Clone(out[i].Dependencies)
	}

	return out
}

// MarkInstalled records name as installed without running an install.
func (s *Store) MarkInstalled(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.installed[key(name)] = true
}

// Prompt returns the line offering to install name.
func (s *Store) Prompt(name string) string {
	p, ok := s.Info(name)
	if !ok {
		return missing(name)
	}

	return "|| !! " + p.Name + " doesn't exist. Would you like me to install " +
		p.File() + " onto your system? [ Y ] [ N ]"
}

// InstallOutput returns the transcript of an install of name that the user
// confirmed or declined.
func (s *Store) InstallOutput(name string, confirmed bool) string {
	p, ok := s.Info(name)
	if !ok {
		return missing(name)
	}

	if !confirmed {
		return "|| Installation cancelled."
	}

	return "|| Y\n" +
		"|| Now installing " + p.File() + " from " + p.Source + "\n" +
		"|| |" + strings.Repeat("█", 40) + "| 100%\n" +
		"|| ✓ " + p.Name + " installed successfully!"
}

func missing(name string) string {
	return "|| !! " + name + " doesn't exist in the package registry."
}

// Phase is the stage an install has reached.
type Phase string

const (
	PhaseChecking    Phase = "checking"
	PhaseDownloading Phase = "downloading"
	PhaseInstalling  Phase = "installing"
	PhaseComplete    Phase = "complete"
	PhaseError       Phase = "error"
)

// Progress is one install progress report.
type Progress struct {
	Phase   Phase  `json:"status"   yaml:"status"`
	Percent int    `json:"progress" yaml:"progress"`
	Message string `json:"message"  yaml:"message"`
}

func (p Progress) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("phase", string(p.Phase)),
		slog.Int("percent", p.Percent),
		slog.String("message", p.Message),
	)
}

func steps(p Package) []Progress {
	return []Progress{
		{PhaseChecking, 10, "Checking dependencies..."},
		{PhaseDownloading, 30, "Downloading from " + p.Source + "..."},
		{PhaseDownloading, 60, "Extracting files..."},
		{PhaseInstalling, 80, "Installing package..."},
		{PhaseInstalling, 95, "Configuring system..."},
		{PhaseComplete, 100, "Installation complete!"},
	}
}

// Install simulates installing name, reporting each step to progress (which
// may be nil) and pausing after it. The package is marked installed only
// after the last step. Cancelling ctx stops the install with [ErrInstall].
func (s *Store) Install(ctx context.Context, name string, progress func(Progress)) error {
	if progress == nil {
		progress = func(Progress) {}
	}

	s.mu.RLock()
	delay, logger := s.delay, s.logger
	s.mu.RUnlock()

	p, ok := s.Info(name)
	if !ok {
		progress(Progress{PhaseError, 0, "Package not found in registry"})

		return ErrNotFound.Wrapf("%q", name)
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for _, step := range steps(p) {
		logger.DebugContext(ctx, "install", slog.String("package", p.Name), slog.Any("step", step))
		progress(step)

		timer.Reset(delay)

		select {
		case <-ctx.Done():
			return ErrInstall.Wrap(ctx.Err())
		case <-timer.C:
		}
	}

	s.MarkInstalled(p.Name)

	return nil
}
