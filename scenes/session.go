package scenes

import (
	"fmt"

	"github.com/automoto/keyrunner/assets"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/logger"
	"github.com/automoto/keyrunner/records"
	"github.com/sirupsen/logrus"
)

// Session is what every scene shares for the life of the window
type Session struct {
	Levels  *cfg.Level
	Loader  *assets.Loader
	Records *records.Store
	Player  string
	Seed    int64

	levelsPath string
	watcher    *cfg.Watcher
	log        *logrus.Entry
}

// NewSession reads the level sequence at levelsPath from the loader's
// file system.
func NewSession(loader *assets.Loader, levelsPath string, store *records.Store) (*Session, error) {
	s := &Session{
		Loader:     loader,
		Records:    store,
		Player:     "player",
		Seed:       1,
		levelsPath: levelsPath,
		log:        logger.For("session"),
	}
	first, err := cfg.LoadLevels(loader.FS(), levelsPath)
	if err != nil {
		return nil, err
	}
	s.Levels = first
	return s, nil
}

// Watch reloads the level sequence whenever the file at path is rewritten.
// path is on the host file system.
func (s *Session) Watch(path string) error {
	w, err := cfg.WatchLevels(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	s.watcher = w
	s.log.WithField("path", path).Info("watching levels")
	return nil
}

// LevelsChanged reports whether the level file was rewritten and reloaded
// since the last call. A file that no longer parses keeps the old sequence.
func (s *Session) LevelsChanged() bool {
	if s.watcher == nil {
		return false
	}
	select {
	case err := <-s.watcher.Errors:
		s.log.WithError(err).Warn("level watcher")
	default:
	}
	if !s.watcher.Poll() {
		return false
	}

	first, err := cfg.LoadLevels(s.Loader.FS(), s.levelsPath)
	if err != nil {
		s.log.WithError(err).Warn("Could not reload levels")
		return false
	}
	s.Levels = first
	s.log.WithField("levels", first.Count()).Info("levels reloaded")
	return true
}

func (s *Session) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}
