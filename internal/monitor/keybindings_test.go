package monitor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleKeyMsg_Quit(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			m, _ := newTestModel(t, newFakeClient())
			handled, cmd := m.HandleKeyMsg(keyMsg(key))

			assert.True(t, handled)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.True(t, m.quitting)
			assert.Empty(t, m.View())
		})
	}
}

func TestHandleKeyMsg_RefreshFetchesNow(t *testing.T) {
	m, _ := newTestModel(t, newFakeClient())
	handled, cmd := m.HandleKeyMsg(keyMsg("r"))

	assert.True(t, handled)
	require.NotNil(t, cmd)
	msg, ok := cmd().(snapshotMsg)
	require.True(t, ok)
	assert.Equal(t, uint64(1), msg.seq)
	assert.NoError(t, msg.err)
}

func TestHandleKeyMsg_Help(t *testing.T) {
	m, _ := newTestModel(t, newFakeClient())

	handled, _ := m.HandleKeyMsg(keyMsg("?"))
	assert.True(t, handled)
	assert.True(t, m.showHelp)

	handled, _ = m.HandleKeyMsg(keyMsg("esc"))
	assert.True(t, handled)
	assert.False(t, m.showHelp)

	handled, _ = m.HandleKeyMsg(keyMsg("esc"))
	assert.False(t, handled, "esc does nothing without the overlay")

	m.HandleKeyMsg(keyMsg("?"))
	m.HandleKeyMsg(keyMsg("?"))
	assert.False(t, m.showHelp)
}

func TestHandleKeyMsg_ReportClearsNotice(t *testing.T) {
	m, _ := newTestModel(t, newFakeClient())
	m.notice = "Report failed: disk full"
	m.noticeErr = true

	handled, cmd := m.HandleKeyMsg(keyMsg("p"))
	assert.True(t, handled)
	assert.NotNil(t, cmd)
	assert.True(t, m.ReportBusy())
	notice, _ := m.Notice()
	assert.Empty(t, notice)
}

func TestHandleKeyMsg_Unhandled(t *testing.T) {
	m, _ := newTestModel(t, newFakeClient())
	handled, cmd := m.HandleKeyMsg(keyMsg("x"))
	assert.False(t, handled)
	assert.Nil(t, cmd)
}
