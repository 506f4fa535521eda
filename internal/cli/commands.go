package cli

import (
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/spf13/cobra"
)

// dashboardCmd is the explicit form of the bare root command.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the live dashboard (default command)",
	Long: `Poll the telemetry endpoint and render a live dashboard.

Metrics and session status refresh every poll interval; the clock ticks
every second. Charts keep the last poll.history points.

With --headless nothing is drawn. Every widget update is written to
stdout as one JSON object per line instead.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Refresh now
  p           Generate and download a report
  s           Start or stop the monitoring session
  ?           Show help

Examples:
  sysdash dashboard
  sysdash dashboard --interval 2s
  sysdash dashboard --headless | jq .widget`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context(), dashboardCmdFlags)
	},
}

var dashboardCmdFlags DashboardFlags

// reportCmd downloads one report artifact.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate and download a system report",
	Long: `Ask the endpoint to generate a report and save it to report.dir.

The file is named system_report_<timestamp>.<ext>, where the extension
comes from the downloaded content (pdf unless it says otherwise).

Examples:
  sysdash report
  sysdash report --report-dir ~/reports`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return reportCommand(cmd.Context(), reportFlags, cmd.OutOrStdout())
	},
}

// sessionCmd groups the monitoring session controls
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Start or stop the endpoint's monitoring session",
	Long: `Start or stop the monitoring session on the endpoint.

The endpoint collects report samples only while a session is active.
Starting a session discards the samples of the previous one.`,
}

var sessionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a monitoring session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sessionCommand(cmd.Context(), true, sessionFlags, cmd.OutOrStdout())
	},
}

var sessionStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the current monitoring session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sessionCommand(cmd.Context(), false, sessionFlags, cmd.OutOrStdout())
	},
}

// initCmd creates a new config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .sysdash.yaml configuration",
	Long: `Create a sysdash configuration file with sensible defaults.

Prompts for the endpoint URL, refresh interval, and an optional SSH host
to tunnel through. Without a terminal, or with --non-interactive, the
flags and defaults are used as-is.

Examples:
  sysdash init
  sysdash init --url http://metrics.lan:5000 --non-interactive
  sysdash init --global --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initFlags
		opts.Out = cmd.OutOrStdout()
		return Init(opts)
	},
}

// configCmd groups config file helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or edit the config file",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one config key",
	Long: `Set a dotted config key in the active config file, keeping comments.

The change is rejected if the file no longer validates afterwards.

Examples:
  sysdash config set endpoint.url http://metrics.lan:5000
  sysdash config set poll.interval 2s
  sysdash config set display.disk_rates zero`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSetCommand(args[0], args[1], cmd.OutOrStdout())
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file sysdash would load",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configPathCommand(cmd.OutOrStdout())
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for sysdash.

Examples:
  # Bash
  sysdash completion bash > /etc/bash_completion.d/sysdash

  # Zsh
  sysdash completion zsh > "${fpath[1]}/_sysdash"

  # Fish
  sysdash completion fish > ~/.config/fish/completions/sysdash.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	AddDashboardFlags(dashboardCmd, &dashboardCmdFlags)
	AddEndpointFlags(reportCmd, &reportFlags)
	sessionCmd.PersistentFlags().StringVar(&sessionFlags.URL, "url", "", "endpoint base URL (e.g., http://localhost:5000)")

	// init command flags
	initCmd.Flags().StringVar(&initFlags.URL, "url", "", "endpoint base URL")
	initCmd.Flags().StringVar(&initFlags.Interval, "interval", "", "refresh interval (e.g., 1s)")
	initCmd.Flags().StringVar(&initFlags.SSH, "ssh", "", "SSH host to tunnel through")
	initCmd.Flags().BoolVar(&initFlags.Global, "global", false, "write ~/.config/sysdash/config.yaml")
	initCmd.Flags().BoolVar(&initFlags.Overwrite, "force", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initFlags.NonInteractive, "non-interactive", false, "skip prompts")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionStopCmd)

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}
