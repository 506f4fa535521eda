// Package monitor implements the live telemetry dashboard.
//
// The dashboard polls a remote metrics endpoint, keeps a sliding window of
// trending values and renders them as charts, tiles and tables in the terminal.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: Holds the history, widget board, stream bookkeeping and report state
//   - Update: Processes messages (keystrokes, ticks, fetch results)
//   - View: Renders the board to a string for display
//
// Update is the only place state changes. Fetches and report downloads run as
// commands and come back as messages.
//
// # Key Components
//
//	Scheduler       - Arms the metrics, status and clock ticks and tags fetches
//	Ingestor        - Validates a snapshot and appends one point to History
//	History         - Fixed-capacity ring buffers, one per trending series
//	Renderer        - Projects History and the latest snapshot into WidgetUpdates
//	Board           - Sink holding the latest update per widget, read by View
//	JSONSink        - Sink writing updates as JSON lines (headless mode)
//	ReportRequester - Downloads the generated report and saves it locally
//
// # Message Flow
//
//  1. tickMsg fires for a stream at the configured interval (default 1s)
//  2. The scheduler issues a fetch tagged with the stream's next sequence number
//  3. snapshotMsg or statusMsg arrives; stale or failed results are dropped
//  4. A fresh snapshot is ingested and every metrics widget is re-rendered
//
// A failed tick never touches History or the widgets; the next tick starts over.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Fetch metrics now
//	p           - Generate report
//	s           - Start or stop the monitoring session
//	?           - Toggle help overlay
//	Esc         - Close help
package monitor
