package assistctl

import (
	"context"
	"fmt"

	"assistd/internal/installer"
)

// pip package and import-probe module per service.
var serviceDeps = map[string]struct {
	pkg    string
	module string
}{
	"stt":        {"faster-whisper", "faster_whisper"},
	"tts":        {"kokoro", "kokoro"},
	"embeddings": {"sentence-transformers", "sentence_transformers"},
}

func newDepsInstaller(cfg *Config) *installer.Installer {
	return installer.New(installer.Config{Python: cfg.Python, SpecsFile: cfg.SpecsFile})
}

// installDeps installs the Python dependencies for one service, or every
// known package in a single pip run when service is empty. It shares the
// package pins with the daemon, so deps installed here are exactly the
// ones assistd probes for at startup.
func installDeps(ctx context.Context, inst *installer.Installer, service string) error {
	if service == "" {
		info("[deps] Installing all runtime dependencies")
		if err := inst.InstallAll(ctx); err != nil {
			return err
		}
		info("[deps] All runtime dependencies installed")
		return nil
	}
	dep, ok := serviceDeps[service]
	if !ok {
		return fmt.Errorf("unknown service %q (expected stt, tts or embeddings)", service)
	}
	info("[deps] Installing %s for %s", dep.pkg, service)
	if err := inst.EnsureInstalled(ctx, dep.pkg, inst.ImportProbe(dep.module)); err != nil {
		return err
	}
	info("[deps] %s installed", dep.pkg)
	return nil
}
