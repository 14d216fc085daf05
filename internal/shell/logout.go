package shell

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Logout asks the session source to log out. There is no timeout: if the
// call never returns, the shell stays where it is.
func (m *Model) Logout() tea.Cmd {
	session, ctx := m.session, m.ctx
	return func() tea.Msg {
		return LogoutSettledMsg{Err: session.Logout(ctx)}
	}
}

// Success and failure both end on the login route.
func (m *Model) handleLogoutSettled(msg LogoutSettledMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("logout failed", zap.Error(msg.Err))
	} else {
		m.logger.Info("logged out")
	}
	return m, m.Navigate(LoginPath)
}
