package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adamavenir/peerlearn/internal/types"
)

// Friends lists the user's friends.
type Friends struct {
	frame
	deps    Deps
	friends *Loader[[]types.User]
}

func NewFriends(deps Deps) *Friends {
	return &Friends{
		deps: deps,
		friends: NewLoader(deps.Context, func(ctx context.Context) ([]types.User, error) {
			return deps.API.Friends(ctx)
		}),
	}
}

func (f *Friends) Init() tea.Cmd {
	return f.friends.Load()
}

func (f *Friends) Update(msg tea.Msg) tea.Cmd {
	if f.friends.Update(msg) {
		return nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.Reload) {
		return f.friends.Load()
	}
	return nil
}

func (f *Friends) View() string {
	return f.friends.View(func(friends []types.User) string {
		if len(friends) == 0 {
			return mutedStyle.Render("No friends yet. Check Friend Requests for pending invites.")
		}
		lines := make([]string, 0, len(friends))
		for _, friend := range friends {
			streak := ""
			if friend.LearningStreak > 0 {
				streak = mutedStyle.Render(fmt.Sprintf("  %d-day streak", friend.LearningStreak))
			}
			lines = append(lines, fmt.Sprintf("%s  %s%s", friend.Name, mutedStyle.Render(friend.Email), streak))
		}
		return strings.Join(lines, "\n")
	})
}
