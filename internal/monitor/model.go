package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
)

// Client is everything the dashboard needs from the endpoint.
type Client interface {
	Source
	ReportSource
	SessionControl
}

// Options configures a dashboard model. Zero values select defaults.
type Options struct {
	Endpoint string
	Interval time.Duration
	// Timeout adds a deadline to each fetch on top of whatever the client
	// enforces. Zero adds none.
	Timeout        time.Duration
	HistorySize    int
	DiskRates      DiskRateMode
	ProcessNameMax int
	GPUNameMax     int
	ReportDir      string
	Logger         logger.Logger
	// Sink receives every widget update in addition to the board.
	Sink Sink
	// Now is the clock used for the first clock render. Defaults to time.Now.
	Now func() time.Time
}

// reportDoneMsg carries a finished report request.
type reportDoneMsg struct {
	result ReportResult
}

// Model is the Bubble Tea model for the dashboard. All state changes happen
// in Update; fetches and report downloads run as commands.
type Model struct {
	scheduler *Scheduler
	history   *History
	ingestor  *Ingestor
	renderer  *Renderer
	board     *Board
	sink      Sink
	reporter  *ReportRequester
	busy      *BusyFlag
	session   SessionControl
	spinner   spinner.Model
	log       logger.Logger
	timeout   time.Duration

	sessionActive bool
	sessionBusy   bool

	endpoint   string
	lastUpdate time.Time
	notice     string
	noticeErr  bool

	width    int
	height   int
	showHelp bool
	quitting bool
}

// NewModel wires a dashboard around client.
func NewModel(client Client, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.NewEnvLogger("[monitor]")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	board := NewBoard()
	var sink Sink = board
	if opts.Sink != nil {
		sink = MultiSink{board, opts.Sink}
	}

	busy := &BusyFlag{}
	reporter := NewReportRequester(client, opts.ReportDir, busy)
	reporter.SetLogger(log)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: []string{"◐", "◓", "◑", "◒"}, FPS: time.Second / 10}
	sp.Style = lipgloss.NewStyle().Foreground(ColorWarning)

	m := Model{
		scheduler: NewScheduler(client, opts.Interval, opts.Timeout),
		history:   NewHistory(opts.HistorySize),
		ingestor:  NewIngestor(opts.DiskRates),
		renderer:  NewRenderer(opts.ProcessNameMax, opts.GPUNameMax),
		board:     board,
		sink:      sink,
		reporter:  reporter,
		busy:      busy,
		session:   client,
		spinner:   sp,
		log:       log,
		timeout:   opts.Timeout,
		endpoint:  opts.Endpoint,
	}
	m.apply(m.renderer.RenderClock(now()))
	return m
}

// Init arms the three streams and fetches immediately.
func (m Model) Init() tea.Cmd {
	return m.scheduler.Start()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, m.handleTick(msg)

	case snapshotMsg:
		m.handleSnapshot(msg)

	case statusMsg:
		m.handleStatus(msg)

	case reportDoneMsg:
		m.notice = msg.result.Message
		m.noticeErr = !msg.result.OK()

	case sessionDoneMsg:
		return m, m.handleSessionDone(msg)

	case spinner.TickMsg:
		if m.busy.Busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// handleTick re-arms the stream and starts its work for this tick.
func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	switch msg.stream {
	case StreamMetrics:
		return tea.Batch(m.scheduler.Tick(StreamMetrics), m.scheduler.FetchSnapshot())
	case StreamStatus:
		return tea.Batch(m.scheduler.Tick(StreamStatus), m.scheduler.FetchStatus())
	case StreamClock:
		m.apply(m.renderer.RenderClock(msg.at))
		return m.scheduler.Tick(StreamClock)
	}
	return nil
}

// handleSnapshot ingests a finished metrics fetch. Any failure leaves the
// history and every metrics widget exactly as they were.
func (m *Model) handleSnapshot(msg snapshotMsg) {
	if m.scheduler.Stale(StreamMetrics, msg.seq) {
		m.log.Debug("dropping stale metrics response #%d", msg.seq)
		return
	}
	if msg.err != nil {
		m.streamFailed(StreamMetrics, msg.err)
		return
	}

	state, err := m.ingestor.Ingest(m.history, msg.snapshot)
	if err != nil {
		m.streamFailed(StreamMetrics, err)
		return
	}

	m.scheduler.Succeeded(StreamMetrics, msg.seq, state.At)
	m.lastUpdate = state.At
	m.apply(m.renderer.RenderMetrics(m.history.Snapshot(), state.Snapshot)...)
}

func (m *Model) handleStatus(msg statusMsg) {
	if m.scheduler.Stale(StreamStatus, msg.seq) {
		m.log.Debug("dropping stale status response #%d", msg.seq)
		return
	}
	if msg.err != nil {
		m.streamFailed(StreamStatus, msg.err)
		return
	}

	m.scheduler.Succeeded(StreamStatus, msg.seq, time.Now())
	m.sessionActive = msg.status.Active
	m.apply(m.renderer.RenderStatus(msg.status))
}

func (m *Model) streamFailed(stream Stream, err error) {
	m.scheduler.Failed(stream, err)
	h := m.scheduler.Health(stream)
	m.log.Warn("%s tick failed (%d in a row): %s", stream, h.Failures, errors.Summarize(err))
}

func (m *Model) apply(updates ...WidgetUpdate) {
	if err := m.sink.Apply(updates...); err != nil {
		m.log.Error("widget sink: %v", err)
	}
}

// generateReportCmd runs the report requester off the update loop.
func (m *Model) generateReportCmd() tea.Cmd {
	reporter := m.reporter
	return func() tea.Msg {
		return reportDoneMsg{result: reporter.Generate(context.Background())}
	}
}

// Board exposes the current widget contents.
func (m Model) Board() *Board {
	return m.board
}

// History exposes the sliding window.
func (m Model) History() *History {
	return m.history
}

// Scheduler exposes the stream bookkeeping.
func (m Model) Scheduler() *Scheduler {
	return m.scheduler
}

// ReportBusy reports whether a report download is in flight.
func (m Model) ReportBusy() bool {
	return m.busy.Busy()
}

// Notice returns the footer message and whether it describes a failure.
func (m Model) Notice() (string, bool) {
	return m.notice, m.noticeErr
}

// SecondsSinceUpdate returns how many seconds have passed since the last
// successful metrics ingest.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}
