package assistctl

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Config carries the settings shared by every subcommand.
type Config struct {
	Addr       string // daemon base URL
	TimeoutSec int    // per-request timeout
	LogLvl     string
	Python     string // interpreter for dependency installs
	SpecsFile  string // optional requirements file overriding built-in pins
}

// DefaultConfig resolves defaults from the environment.
func DefaultConfig() *Config {
	return &Config{
		Addr:       envStr("ASSISTD_ADDR", "http://127.0.0.1:8765"),
		TimeoutSec: envInt("ASSISTCTL_TIMEOUT", 30),
		LogLvl:     envStr("ASSISTCTL_LOG_LEVEL", "info"),
		Python:     envStr("ASSISTD_PYTHON", "python3"),
		SpecsFile:  envStr("ASSISTD_PACKAGES_FILE", ""),
	}
}

func (c *Config) client() *Client {
	return NewClient(c.Addr, time.Duration(c.TimeoutSec)*time.Second)
}

// buildRootCmd is a convenience for help-only fallbacks.
func buildRootCmd() *cobra.Command { return buildRootCmdWith(DefaultConfig()) }

// buildRootCmdWith constructs the Cobra command tree wired to the fn* actions.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "assistctl",
		Short:         "Operate and exercise a local assistd daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags -> Config
	root.PersistentFlags().String("addr", cfg.Addr, "Daemon base URL (defaults ASSISTD_ADDR or http://127.0.0.1:8765)")
	root.PersistentFlags().Int("timeout", cfg.TimeoutSec, "Per-request timeout in seconds (defaults ASSISTCTL_TIMEOUT or 30)")
	root.PersistentFlags().String("log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults ASSISTCTL_LOG_LEVEL or info)")
	root.PersistentFlags().String("python", cfg.Python, "Python interpreter for dependency installs (defaults ASSISTD_PYTHON or python3)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if f := cmd.InheritedFlags().Lookup("addr"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.Addr = v
			}
		}
		if f := cmd.InheritedFlags().Lookup("timeout"); f != nil {
			var n int
			_, _ = fmt.Sscanf(f.Value.String(), "%d", &n)
			if n > 0 {
				cfg.TimeoutSec = n
			}
		}
		if f := cmd.InheritedFlags().Lookup("log-level"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.LogLvl = v
			}
		}
		if f := cmd.InheritedFlags().Lookup("python"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.Python = v
			}
		}
		SetLogLevel(cfg.LogLvl)
	}

	// install group
	installCmd := &cobra.Command{Use: "install", Short: "Install runtime dependencies", RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("install requires a subcommand: deps|llama|llama:cuda")
	}}
	installDepsCmd := &cobra.Command{Use: "deps [stt|tts|embeddings]", Short: "Install Python packages (all services by default)", Example: "  assistctl install deps\n  assistctl install deps tts", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		service := ""
		if len(args) == 1 {
			service = args[0]
		}
		return fnInstallDeps(cmd.Context(), newDepsInstaller(cfg), service)
	}}
	installLlamaCmd := &cobra.Command{Use: "llama", Short: "Build llama.cpp shared libraries into ./bin", RunE: func(cmd *cobra.Command, args []string) error { return fnInstallLlama(false) }}
	installLlamaCUDACmd := &cobra.Command{Use: "llama:cuda", Short: "Build llama.cpp with CUDA into ./bin", RunE: func(cmd *cobra.Command, args []string) error { return fnInstallLlama(true) }}
	installCmd.AddCommand(installDepsCmd, installLlamaCmd, installLlamaCUDACmd)
	root.AddCommand(installCmd)

	// daemon commands
	statusCmd := &cobra.Command{Use: "status", Short: "Show daemon health and per-service model status", RunE: func(cmd *cobra.Command, args []string) error {
		return printStatus(cmd.Context(), cfg.client())
	}}
	downloadCmd := &cobra.Command{Use: "download <stt|tts|embeddings>", Short: "Ask the daemon to install a service's model dependencies", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := serviceDeps[args[0]]; !ok {
			return fmt.Errorf("unknown service %q (expected stt, tts or embeddings)", args[0])
		}
		return downloadService(cmd.Context(), cfg.client(), args[0])
	}}
	waitCmd := &cobra.Command{Use: "wait", Short: "Block until the daemon reports ready", RunE: func(cmd *cobra.Command, args []string) error {
		info("Waiting for %s/readyz", cfg.Addr)
		return fnWaitHTTP(cfg.Addr+"/readyz", 200, time.Duration(cfg.TimeoutSec)*time.Second)
	}}
	smokeCmd := &cobra.Command{Use: "smoke", Short: "Exercise the live API surface end to end", RunE: func(cmd *cobra.Command, args []string) error {
		return fnRunSmoke(cmd.Context(), cfg.client())
	}}
	root.AddCommand(statusCmd, downloadCmd, waitCmd, smokeCmd)

	// test group
	testCmd := &cobra.Command{Use: "test", Short: "Run test suites", RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("test requires a subcommand: go|e2e")
	}}
	testGo := &cobra.Command{Use: "go", Short: "Run Go tests", RunE: func(cmd *cobra.Command, args []string) error { return fnRunGoTests() }}
	testE2E := &cobra.Command{Use: "e2e", Short: "Run the live end-to-end suite (needs Python deps)", RunE: func(cmd *cobra.Command, args []string) error { return fnRunE2ETests() }}
	testCmd.AddCommand(testGo, testE2E)
	root.AddCommand(testCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenPowerShellCompletionWithDesc(os.Stdout) }})
	root.AddCommand(completionCmd)

	return root
}

// MainWithArgs is a testable variant of Main that accepts args explicitly.
// It returns an exit code (0 for success, non-zero on error).
func MainWithArgs(args []string) int {
	root := buildRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// Main returns an exit code (0 for success, non-zero on error) for use by cmd/assistctl.
func Main() int { return MainWithArgs(os.Args[1:]) }
