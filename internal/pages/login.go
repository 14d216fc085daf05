package pages

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type loginResultMsg struct {
	err error
}

// Login is the sign-in form. It is rendered full screen, outside the shell.
type Login struct {
	frame
	deps       Deps
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	err        string
}

func NewLogin(deps Deps) *Login {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = ""
	email.CharLimit = 254
	email.Width = 32

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Width = 32

	return &Login{deps: deps, email: email, password: password}
}

func (l *Login) Init() tea.Cmd {
	return l.email.Focus()
}

func (l *Login) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginResultMsg:
		l.submitting = false
		if msg.err != nil {
			l.err = errorText(msg.err)
			l.password.SetValue("")
			return l.setFocus(1)
		}
		l.err = ""
		return navigate("/dashboard")
	case tea.KeyMsg:
		if l.submitting {
			return nil
		}
		switch msg.Type {
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			return l.setFocus(1 - l.focus)
		case tea.KeyEnter:
			if l.focus == 0 {
				return l.setFocus(1)
			}
			return l.submit()
		}
	}

	var cmd tea.Cmd
	if l.focus == 0 {
		l.email, cmd = l.email.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return cmd
}

func (l *Login) setFocus(index int) tea.Cmd {
	l.focus = index
	if index == 0 {
		l.password.Blur()
		return l.email.Focus()
	}
	l.email.Blur()
	return l.password.Focus()
}

func (l *Login) submit() tea.Cmd {
	email := strings.TrimSpace(l.email.Value())
	password := l.password.Value()
	if email == "" || password == "" {
		l.err = "Email and password are required."
		return nil
	}
	if l.deps.Login == nil {
		l.err = "Sign-in is unavailable."
		return nil
	}

	l.submitting = true
	l.err = ""
	ctx, login, logger := l.deps.Context, l.deps.Login, l.deps.Logger
	return func() tea.Msg {
		if _, err := login(ctx, email, password); err != nil {
			logger.Info("login failed", zap.String("email", email), zap.Error(err))
			return loginResultMsg{err: err}
		}
		return loginResultMsg{}
	}
}

func (l *Login) View() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("◆ PeerLearn"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Sign in to continue"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Email"))
	b.WriteString("\n")
	b.WriteString(l.email.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Password"))
	b.WriteString("\n")
	b.WriteString(l.password.View())
	b.WriteString("\n\n")
	switch {
	case l.submitting:
		b.WriteString(mutedStyle.Render("Signing in…"))
	case l.err != "":
		b.WriteString(errorStyle.Render(l.err))
	default:
		b.WriteString(mutedStyle.Render("enter to sign in · tab to switch fields"))
	}

	form := cardStyle.Padding(1, 3).Render(b.String())
	if l.width <= 0 || l.height <= 0 {
		return form
	}
	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, form)
}
