package session

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/adamavenir/peerlearn/internal/types"
)

const watchDebounce = 300 * time.Millisecond

// Watch follows the session database so a login or logout from another
// peerlearn process is picked up. After each burst of changes it re-resolves
// and calls onChange. It blocks until ctx is done.
func (m *Manager) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dbPath := m.store.Path()
	if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
		return err
	}
	base := filepath.Base(dbPath)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSessionFile(event.Name, base) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			timerCh = timer.C
		case <-timerCh:
			timerCh = nil
			before := m.User()
			if err := m.Resolve(ctx); err != nil {
				m.logger.Debug("re-resolve after store change", zap.Error(err))
			}
			if sameUser(before, m.User()) {
				continue
			}
			if onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			m.logger.Warn("session watcher", zap.Error(err))
		}
	}
}

// isSessionFile matches the database and its WAL/SHM sidecars.
func isSessionFile(name, base string) bool {
	return strings.HasPrefix(filepath.Base(name), base)
}

func sameUser(a, b *types.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
