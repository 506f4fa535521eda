package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/ui"
	"golang.org/x/term"
)

// endpointCheckTimeout bounds the reachability probe after the prompts.
const endpointCheckTimeout = 3 * time.Second

// InitOptions holds options for the init command.
type InitOptions struct {
	URL            string // Pre-specified endpoint URL
	Interval       string // Pre-specified refresh interval
	SSH            string // Pre-specified SSH host to tunnel through
	Global         bool   // Write ~/.config/sysdash/config.yaml instead of ./.sysdash.yaml
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use flags and defaults
	Out            io.Writer
}

var initFlags InitOptions

// Init creates a new config file.
func Init(opts InitOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if !opts.NonInteractive && !term.IsTerminal(int(os.Stdin.Fd())) {
		opts.NonInteractive = true
	}

	configPath := filepath.Join(".", config.ConfigFileName)
	if opts.Global {
		configPath = config.GlobalPath()
		if configPath == "" {
			return errors.New(errors.ErrConfig,
				"Can't find your home directory",
				"Drop --global to write "+config.ConfigFileName+" here instead")
		}
	}

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", configPath)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	endpoint := opts.URL
	if endpoint == "" {
		endpoint = cfg.Endpoint.URL
	}
	interval := opts.Interval
	if interval == "" {
		interval = cfg.Poll.Interval.String()
	}
	sshHost := opts.SSH

	if !opts.NonInteractive {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Endpoint URL").
					Description("Base URL of the telemetry endpoint").
					Placeholder("http://localhost:5000").
					Value(&endpoint).
					Validate(validateEndpointURL),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Refresh interval").
					Description("How often metrics and status are polled").
					Placeholder("1s").
					Value(&interval).
					Validate(validateInterval),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("SSH host (optional)").
					Description("Reach the endpoint through this host: alias, user@host or host:port").
					Placeholder("leave empty to connect directly").
					Value(&sshHost),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive flag")
		}
	}

	if err := validateEndpointURL(endpoint); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a usable endpoint URL", endpoint),
			"Use a full URL like http://localhost:5000")
	}
	parsed, err := ParseInterval(interval)
	if err != nil {
		return err
	}

	cfg.Endpoint.URL = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	cfg.Endpoint.SSH = strings.TrimSpace(sshHost)
	if parsed != 0 {
		cfg.Poll.Interval = parsed
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if !opts.NonInteractive {
		fmt.Fprintln(out)
		spinner := ui.NewSpinner("Checking "+cfg.Endpoint.URL, out)
		spinner.Start()
		if err := checkEndpoint(cfg); err != nil {
			spinner.Fail("Couldn't reach " + cfg.Endpoint.URL)
			fmt.Fprintln(out, ui.Warning(errors.Summarize(err)+" (saving anyway)"))
		} else {
			spinner.Success()
		}
	}

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}
	fmt.Fprintln(out, ui.Success("Created "+configPath))
	fmt.Fprintln(out, "Run 'sysdash' to open the dashboard.")
	return nil
}

// validateEndpointURL accepts absolute http(s) URLs.
func validateEndpointURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint URL must look like http://host:port")
	}
	return nil
}

func validateInterval(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("try something like 1s or 500ms")
	}
	if d < 250*time.Millisecond {
		return fmt.Errorf("interval must be at least 250ms")
	}
	return nil
}

// checkEndpoint asks the endpoint for its session status once.
func checkEndpoint(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), endpointCheckTimeout)
	defer cancel()

	sess, err := openSession(ctx, cfg, logger.Noop())
	if err != nil {
		return err
	}
	defer sess.Close()

	_, err = sess.client.FetchStatus(ctx)
	return err
}
