package monitor

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/sysdash/internal/errors"
)

// SessionControl starts and stops the endpoint's monitoring session.
type SessionControl interface {
	StartSession(ctx context.Context) error
	StopSession(ctx context.Context) error
}

// sessionDoneMsg carries a finished start or stop request.
type sessionDoneMsg struct {
	start bool
	err   error
}

// toggleSessionCmd stops an active session and starts an idle one, judged by
// the last status the dashboard saw.
func (m *Model) toggleSessionCmd() tea.Cmd {
	control := m.session
	start := !m.sessionActive
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := fetchContext(timeout)
		defer cancel()
		if start {
			return sessionDoneMsg{start: true, err: control.StartSession(ctx)}
		}
		return sessionDoneMsg{start: false, err: control.StopSession(ctx)}
	}
}

// handleSessionDone reports the outcome and refreshes the status widget right
// away instead of waiting for the next status tick.
func (m *Model) handleSessionDone(msg sessionDoneMsg) tea.Cmd {
	m.sessionBusy = false
	verb := "stop"
	if msg.start {
		verb = "start"
	}

	if msg.err != nil {
		m.log.Warn("session %s failed: %s", verb, errors.Summarize(msg.err))
		m.notice = "Couldn't " + verb + " monitoring: " + errors.Summarize(msg.err)
		m.noticeErr = true
		return nil
	}

	m.sessionActive = msg.start
	m.noticeErr = false
	if msg.start {
		m.notice = "Monitoring started"
	} else {
		m.notice = "Monitoring stopped"
	}
	m.log.Info("%s", m.notice)
	return m.scheduler.FetchStatus()
}

// SessionActive reports whether the last status said a session was running.
func (m Model) SessionActive() bool {
	return m.sessionActive
}
