package monitor

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyRefresh    = "r"
	KeyReport     = "p"
	KeySession    = "s"
	KeyToggleHelp = "?"
	KeyCloseHelp  = "esc"
)

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key == KeyCloseHelp {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyRefresh:
		return true, m.scheduler.FetchSnapshot()

	case KeyReport:
		// Soft guard: a second press while a report is downloading is ignored.
		if m.busy.Busy() {
			return true, nil
		}
		m.busy.SetBusy(true)
		m.notice = ""
		return true, tea.Batch(m.generateReportCmd(), m.spinner.Tick)

	case KeySession:
		if m.sessionBusy {
			return true, nil
		}
		m.sessionBusy = true
		m.notice = ""
		return true, m.toggleSessionCmd()
	}

	return false, nil
}
