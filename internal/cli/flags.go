package cli

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/spf13/cobra"
)

// EndpointFlags override the endpoint settings from the config file.
type EndpointFlags struct {
	URL       string
	ReportDir string
}

// DashboardFlags holds everything the dashboard command accepts.
type DashboardFlags struct {
	EndpointFlags
	Interval string
	History  int
	Headless bool
}

var dashboardFlags DashboardFlags

// AddEndpointFlags registers --url and --report-dir on a command.
func AddEndpointFlags(cmd *cobra.Command, flags *EndpointFlags) {
	cmd.Flags().StringVar(&flags.URL, "url", "", "endpoint base URL (e.g., http://localhost:5000)")
	cmd.Flags().StringVar(&flags.ReportDir, "report-dir", "", "directory for downloaded reports")
}

// AddDashboardFlags registers the endpoint flags plus --interval, --history
// and --headless.
func AddDashboardFlags(cmd *cobra.Command, flags *DashboardFlags) {
	AddEndpointFlags(cmd, &flags.EndpointFlags)
	cmd.Flags().StringVar(&flags.Interval, "interval", "", "refresh interval (e.g., 1s, 500ms)")
	cmd.Flags().IntVar(&flags.History, "history", 0, "points kept per chart")
	cmd.Flags().BoolVar(&flags.Headless, "headless", false, "stream widget updates as JSON lines instead of drawing the TUI")
}

// ParseInterval parses a duration flag. Returns zero duration if the flag is empty.
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	duration, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 1s, 2s, or 500ms.")
	}
	return duration, nil
}

// applyEndpointFlags copies non-empty endpoint flags onto cfg.
func applyEndpointFlags(cfg *config.Config, flags EndpointFlags) {
	if flags.URL != "" {
		cfg.Endpoint.URL = flags.URL
	}
	if flags.ReportDir != "" {
		cfg.Report.Dir = config.ExpandPath(flags.ReportDir)
	}
}

// applyDashboardFlags copies non-empty dashboard flags onto cfg and
// re-validates it, so a flag gets the same checks as the file.
func applyDashboardFlags(cfg *config.Config, flags DashboardFlags) error {
	applyEndpointFlags(cfg, flags.EndpointFlags)

	interval, err := ParseInterval(flags.Interval)
	if err != nil {
		return err
	}
	if interval != 0 {
		cfg.Poll.Interval = interval
	}
	if flags.History != 0 {
		cfg.Poll.History = flags.History
	}
	return config.Validate(cfg)
}
