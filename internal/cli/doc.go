// Package cli implements the sysdash command-line interface.
//
// Each Cobra command is a thin definition that delegates to a
// command function (dashboardCommand, reportCommand, Init, ...), which in
// turn wires together the config, client, tunnel and monitor packages.
//
// # Command Structure
//
//	sysdash                      - Live dashboard (same as 'sysdash dashboard')
//	sysdash dashboard            - Live dashboard, or NDJSON with --headless
//	sysdash report               - Generate and download one report
//	sysdash session start|stop   - Control the endpoint's monitoring session
//	sysdash init                 - Create .sysdash.yaml
//	sysdash config set <k> <v>   - Edit one key in the config file
//	sysdash config path          - Show which config file is used
//	sysdash version              - Build information
//
// # Configuration Flow
//
// loadConfig finds and loads the config file (falling back to defaults plus
// SYSDASH_* environment), then applies command flags on top and re-validates,
// so --interval 100ms is rejected the same way poll.interval: 100ms is.
// openSession turns the result into an HTTP client, connecting the SSH
// tunnel first when endpoint.ssh is set.
//
// # Flag Handling
//
// Global flags (--config, --no-color) live on the root command. The
// endpoint flags (--url, --report-dir) are shared through AddEndpointFlags;
// the dashboard adds --interval, --history and --headless on top.
package cli
