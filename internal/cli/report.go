package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/monitor"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

var reportFlags EndpointFlags

// reportCommand requests one report and saves it, the same way the
// dashboard's 'p' key does.
func reportCommand(ctx context.Context, flags EndpointFlags, out io.Writer) error {
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

	log := logger.NewEnvLogger("[report]")
	sess, err := openSession(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer sess.Close()

	spinner := ui.NewSpinner("Generating report on "+cfg.Endpoint.URL, out)
	requester := monitor.NewReportRequester(sess.client, cfg.Report.Dir, spinnerAffordance{spinner})
	// The outcome is printed below; logging it too would say it twice.
	requester.SetLogger(logger.Noop())
	result := requester.Generate(ctx)
	if !result.OK() {
		spinner.Fail(result.Message)
		return result.Err
	}

	spinner.Success()
	fmt.Fprintln(out, result.Message)
	return nil
}

// spinnerAffordance starts the spinner when the request goes out. Finishing
// it is left to the caller, which knows the outcome.
type spinnerAffordance struct {
	spinner *ui.Spinner
}

func (a spinnerAffordance) SetBusy(busy bool) {
	if busy {
		a.spinner.Start()
	}
}
