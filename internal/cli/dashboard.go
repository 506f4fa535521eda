package cli

import (
	"context"
	stderrors "errors"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/sysdash/internal/client"
	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/monitor"
	"github.com/rileyhilliard/sysdash/internal/tunnel"
)

// session is a ready-to-use endpoint client plus the SSH tunnel under it, if any.
type session struct {
	client *client.Client
	tunnel *tunnel.Tunnel
}

// Close releases pooled connections and the tunnel.
func (s *session) Close() {
	s.client.CloseIdleConnections()
	if s.tunnel != nil {
		_ = s.tunnel.Close()
	}
	tunnel.CloseAgent()
}

// loadConfig loads the config file (or defaults), applies flag overrides and
// the process-wide settings that come from it.
func loadConfig(override func(*config.Config) error) (*config.Config, error) {
	cfg, _, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if override != nil {
		if err := override(cfg); err != nil {
			return nil, err
		}
	}

	logger.SetDebug(cfg.Log.Debug)
	applyColorMode(cfg.Display.Color)
	return cfg, nil
}

// openSession builds the HTTP client for cfg. With endpoint.ssh set, the
// tunnel is connected up front so SSH problems are reported before anything
// else starts.
func openSession(ctx context.Context, cfg *config.Config, log logger.Logger) (*session, error) {
	opts := client.Options{
		BaseURL:   cfg.Endpoint.URL,
		Timeout:   cfg.Endpoint.Timeout,
		Tokens:    tokenSource(cfg.Auth),
		UserAgent: "sysdash/" + version,
		Logger:    log,
	}

	s := &session{}
	if cfg.Endpoint.SSH != "" {
		tun := tunnel.New(cfg.Endpoint.SSH, tunnel.Options{
			Timeout:         cfg.Endpoint.Timeout,
			InsecureHostKey: cfg.Endpoint.InsecureHostKey,
			Logger:          log,
		})
		if err := tun.Connect(ctx); err != nil {
			return nil, err
		}
		log.Info("tunneling %s through %s", cfg.Endpoint.URL, tun.Host())
		s.tunnel = tun
		opts.Dial = tun.DialContext
	}

	c, err := client.New(opts)
	if err != nil {
		if s.tunnel != nil {
			_ = s.tunnel.Close()
		}
		return nil, err
	}
	s.client = c
	return s, nil
}

// tokenSource picks the bearer credentials from auth. A JWT secret wins
// over a static token; validation already rejects setting both.
func tokenSource(auth config.AuthConfig) client.TokenSource {
	switch {
	case auth.JWTSecret != "":
		return client.NewJWTSource(auth.JWTSecret, auth.JWTSubject, auth.JWTTTL)
	case auth.Token != "":
		return client.StaticToken(auth.Token)
	}
	return nil
}

// modelOptions maps the config onto the dashboard model.
func modelOptions(cfg *config.Config, log logger.Logger) monitor.Options {
	return monitor.Options{
		Endpoint:       cfg.Endpoint.URL,
		Interval:       cfg.Poll.Interval,
		HistorySize:    cfg.Poll.History,
		DiskRates:      monitor.DiskRateMode(cfg.Display.DiskRates),
		ProcessNameMax: cfg.Display.ProcessNameMax,
		GPUNameMax:     cfg.Display.GPUNameMax,
		ReportDir:      cfg.Report.Dir,
		Logger:         log,
	}
}

// redirectLogs points the standard logger at log.file, or discards it when
// the TUI owns the terminal. The returned func closes the file.
func redirectLogs(cfg *config.Config, headless bool) (func(), error) {
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "sysdash")
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't open log file "+cfg.Log.File,
				"Check the directory exists and is writable, or unset log.file")
		}
		return func() { f.Close() }, nil
	}
	if !headless {
		log.SetOutput(io.Discard)
	}
	return func() {}, nil
}

// dashboardCommand runs the live dashboard until the user quits.
func dashboardCommand(ctx context.Context, flags DashboardFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(func(cfg *config.Config) error {
		return applyDashboardFlags(cfg, flags)
	})
	if err != nil {
		return err
	}

	closeLog, err := redirectLogs(cfg, flags.Headless)
	if err != nil {
		return err
	}
	defer closeLog()

	appLog := logger.NewEnvLogger("[sysdash]")
	sess, err := openSession(ctx, cfg, appLog)
	if err != nil {
		return err
	}
	defer sess.Close()

	opts := modelOptions(cfg, appLog)
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if flags.Headless {
		opts.Sink = monitor.NewJSONSink(os.Stdout)
		programOpts = append(programOpts, tea.WithoutRenderer(), tea.WithInput(nil))
	} else {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	model := monitor.NewModel(sess.client, opts)
	p := tea.NewProgram(model, programOpts...)
	_, err = p.Run()
	if stderrors.Is(err, tea.ErrInterrupted) || stderrors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
