package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/Akashdeep-Patra/scmpanel/internal/app"
	"github.com/Akashdeep-Patra/scmpanel/internal/common"
	"github.com/Akashdeep-Patra/scmpanel/internal/config"
	"github.com/Akashdeep-Patra/scmpanel/internal/git"
	"github.com/Akashdeep-Patra/scmpanel/internal/logging"
	"github.com/Akashdeep-Patra/scmpanel/internal/tab"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui"
	"github.com/Akashdeep-Patra/scmpanel/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// The panel spends its time waiting on git and the terminal; two OS
	// threads are enough. An explicit GOMAXPROCS wins.
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(min(2, runtime.NumCPU()))
	}
	debug.SetMemoryLimit(50 * 1024 * 1024)
}

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "scmpanel:", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scmpanel",
		Short: "A source control panel for the terminal",
		Long: `scmpanel shows the changed files of a git repository next to a
diff preview. Files are staged with a checkbox click or the space key,
and a commit message is typed into the input above the list.`,
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"scmpanel %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())

	rootCmd.Flags().StringP("path", "p", ".", "Path to the git repository")
	rootCmd.Flags().String("log-file", "", "Write logs to this file")
	rootCmd.Flags().String("log-level", "", "Log level: debug, info, warn or error")

	return rootCmd
}

// buildVersionCmd creates the `scmpanel version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprintf(out, "scmpanel %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
			fmt.Fprintf(out, "  go:      %s\n", runtime.Version())
			fmt.Fprintf(out, "  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `scmpanel completion` subcommand.
func buildCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for scmpanel.

Examples:
  scmpanel completion bash > /etc/bash_completion.d/scmpanel
  scmpanel completion zsh > "${fpath[1]}/_scmpanel"
  scmpanel completion fish > ~/.config/fish/completions/scmpanel.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}

func runApp(cmd *cobra.Command, _ []string) error {
	repoPath, _ := cmd.Flags().GetString("path")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if f := cmd.Flags().Lookup("log-file"); f.Changed {
		cfg.LogFile = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-level"); f.Changed {
		cfg.LogLevel = f.Value.String()
	}

	logger, closeLog, err := logging.Init(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog()

	keymaps, err := cfg.KeyMaps()
	if err != nil {
		return fmt.Errorf("loading keymaps: %w", err)
	}

	cliSvc, err := git.NewCLIService(repoPath, logger)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}
	gitSvc := git.NewCachedService(cliSvc, cfg.CacheTTL)
	logger.Info("starting", "root", cliSvc.RepoRoot(), "version", version)

	data := tab.New(cfg, &tab.Workspace{Path: cliSvc.RepoRoot()}, keymaps)
	model := app.New(gitSvc, data, ui.NewStyles(ui.ThemeByName(cfg.Theme)), logger)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	stop, err := watcher.Watch(cliSvc.RepoRoot(), cliSvc.GitDir(), cfg.WatchDebounce, logger, func() {
		gitSvc.Invalidate()
		p.Send(common.RefreshMsg{})
	})
	if err != nil {
		// The panel still works; it just won't follow outside changes.
		logger.Warn("watcher disabled", "err", err)
	} else {
		defer stop()
	}

	_, err = p.Run()
	return err
}
