package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

var sessionFlags EndpointFlags

// sessionCommand starts or stops the endpoint's monitoring session, the same
// requests the dashboard's 's' key makes.
func sessionCommand(ctx context.Context, start bool, flags EndpointFlags, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(func(cfg *config.Config) error {
		applyEndpointFlags(cfg, flags)
		return config.Validate(cfg)
	})
	if err != nil {
		return err
	}

	sess, err := openSession(ctx, cfg, logger.NewEnvLogger("[session]"))
	if err != nil {
		return err
	}
	defer sess.Close()

	label := "Stopping monitoring on " + cfg.Endpoint.URL
	if start {
		label = "Starting monitoring on " + cfg.Endpoint.URL
	}
	spinner := ui.NewSpinner(label, out)
	spinner.Start()

	if start {
		err = sess.client.StartSession(ctx)
	} else {
		err = sess.client.StopSession(ctx)
	}
	if err != nil {
		spinner.Fail(label + " failed")
		return err
	}
	spinner.Success()

	if start {
		fmt.Fprintln(out, "Monitoring started. Run 'sysdash report' once enough samples are in.")
	} else {
		fmt.Fprintln(out, "Monitoring stopped.")
	}
	return nil
}
