// Package installer installs Python runtime dependencies on demand.
//
// Packages are fetched with pip the first time a capability needs them,
// so the shipped binary stays small. Outcomes are remembered per process:
// once a package is confirmed importable it is never probed again.
package installer

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
)

// ImportTest probes whether an installed package can actually be used.
type ImportTest func(ctx context.Context) error

// Config configures an Installer.
type Config struct {
	// Python is the interpreter used for pip and import probes.
	// Empty selects "python3".
	Python string
	// SpecsFile is an optional requirements-format file pinning versions.
	// Empty selects the built-in pins.
	SpecsFile string
	// Runner executes subprocesses; nil selects the exec-backed runner.
	Runner CommandRunner
}

// Installer installs packages with pip and tracks install state.
// All installs are serialized; state reads never block on an install
// in progress, so download status stays observable.
type Installer struct {
	python    string
	specsFile string
	runner    CommandRunner

	installMu sync.Mutex // serializes installs process-wide

	stateMu     sync.RWMutex
	installed   map[string]bool
	downloading map[string]bool
}

// New returns an Installer ready for use.
func New(cfg Config) *Installer {
	if cfg.Python == "" {
		cfg.Python = "python3"
	}
	if cfg.Runner == nil {
		cfg.Runner = execRunner{}
	}
	return &Installer{
		python:      cfg.Python,
		specsFile:   cfg.SpecsFile,
		runner:      cfg.Runner,
		installed:   make(map[string]bool),
		downloading: make(map[string]bool),
	}
}

// EnsureInstalled makes sure pkg is importable, installing it when needed.
// probe may be nil, in which case a successful pip run is trusted.
// Concurrent callers for the same package result in a single install.
func (i *Installer) EnsureInstalled(ctx context.Context, pkg string, probe ImportTest) error {
	if i.Installed(pkg) {
		return nil
	}

	i.installMu.Lock()
	defer i.installMu.Unlock()

	// Double-check after acquiring the lock; another caller may have
	// finished this package while we waited.
	if i.Installed(pkg) {
		return nil
	}

	if probe != nil {
		if err := probe(ctx); err == nil {
			i.markInstalled(pkg)
			log.Printf("installer event=already_available package=%q", pkg)
			return nil
		}
	}

	log.Printf("installer event=install_start package=%q", pkg)
	i.setDownloading(pkg, true)
	defer i.setDownloading(pkg, false)

	if err := i.pipInstall(ctx, i.specFor(pkg)); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("installer event=install_fail package=%q err=%v", pkg, err)
		return ErrDependencyUnavailable(pkg, err.Error())
	}

	if probe != nil {
		if err := probe(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("installer event=import_check_fail package=%q err=%v", pkg, err)
			return ErrImportFailed(pkg, err.Error())
		}
	}

	i.markInstalled(pkg)
	log.Printf("installer event=install_done package=%q", pkg)
	return nil
}

// InstallAll installs every known dependency in a single pip run and
// marks them installed on success. Used at startup when nothing is
// installed yet, to avoid one pip resolution per package.
func (i *Installer) InstallAll(ctx context.Context) error {
	i.installMu.Lock()
	defer i.installMu.Unlock()

	specs := i.loadSpecs()
	if len(specs) == 0 {
		specs = defaultSpecs
	}
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		i.setDownloading(name, true)
	}
	defer func() {
		for _, name := range names {
			i.setDownloading(name, false)
		}
	}()

	args := []string{"-m", "pip", "install"}
	if i.specsFile != "" {
		args = append(args, "-r", i.specsFile)
	} else {
		for _, name := range names {
			args = append(args, specs[name])
		}
	}

	log.Printf("installer event=install_all_start packages=%d", len(names))
	_, stderr, err := i.runner.Run(ctx, i.python, args...)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("installer event=install_all_fail err=%v stderr=%q", err, tail(stderr, 512))
		return ErrDependencyUnavailable("runtime dependencies", fmt.Sprintf("%v: %s", err, tail(stderr, 512)))
	}

	for _, name := range names {
		i.markInstalled(name)
	}
	log.Printf("installer event=install_all_done packages=%d", len(names))
	return nil
}

// ImportProbe returns an ImportTest that runs `python -c "import module"`.
func (i *Installer) ImportProbe(module string) ImportTest {
	return func(ctx context.Context) error {
		_, stderr, err := i.runner.Run(ctx, i.python, "-c", "import "+module)
		if err != nil {
			return fmt.Errorf("import %s: %v (%s)", module, err, tail(stderr, 512))
		}
		return nil
	}
}

// Check reports whether pkg is importable right now. A positive probe
// is remembered so later calls stay cheap. It never installs anything,
// and never probes a package that is mid-install.
func (i *Installer) Check(ctx context.Context, pkg string, probe ImportTest) bool {
	if i.Installed(pkg) {
		return true
	}
	if i.Downloading(pkg) || probe == nil {
		return false
	}
	if err := probe(ctx); err != nil {
		return false
	}
	i.markInstalled(pkg)
	return true
}

// Installed reports whether pkg has been confirmed available. It only
// consults remembered state and never probes.
func (i *Installer) Installed(pkg string) bool {
	i.stateMu.RLock()
	defer i.stateMu.RUnlock()
	return i.installed[pkg]
}

// Downloading reports whether pkg is being installed right now.
func (i *Installer) Downloading(pkg string) bool {
	i.stateMu.RLock()
	defer i.stateMu.RUnlock()
	return i.downloading[pkg]
}

func (i *Installer) markInstalled(pkg string) {
	i.stateMu.Lock()
	i.installed[pkg] = true
	i.stateMu.Unlock()
}

func (i *Installer) setDownloading(pkg string, v bool) {
	i.stateMu.Lock()
	if v {
		i.downloading[pkg] = true
	} else {
		delete(i.downloading, pkg)
	}
	i.stateMu.Unlock()
}

func (i *Installer) pipInstall(ctx context.Context, spec string) error {
	log.Printf("installer event=pip_install spec=%q", spec)
	_, stderr, err := i.runner.Run(ctx, i.python, "-m", "pip", "install", spec)
	if err != nil {
		return fmt.Errorf("pip install %s: %v (%s)", spec, err, tail(stderr, 512))
	}
	return nil
}

func (i *Installer) specFor(pkg string) string {
	specs := i.loadSpecs()
	if spec, ok := specs[pkg]; ok {
		return spec
	}
	log.Printf("installer event=no_version_spec package=%q", pkg)
	return pkg
}

func (i *Installer) loadSpecs() map[string]string {
	if i.specsFile == "" {
		return defaultSpecs
	}
	specs, err := parseSpecs(i.specsFile)
	if err != nil {
		log.Printf("installer event=specs_parse_error file=%q err=%v", i.specsFile, err)
		return nil
	}
	return specs
}
