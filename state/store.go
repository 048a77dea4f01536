package state

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Store persists the last applied input source name as a single line of
// text. The state is advisory: a missing or unreadable file is the valid
// "unknown" state, and a failed save only degrades the next toggle to its
// default direction.
type Store struct {
	Path string
	Log  logrus.FieldLogger
}

func (s *Store) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	return logrus.StandardLogger()
}

// DefaultPath places the state file under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "input-state.txt"
	}
	return filepath.Join(dir, "dizzlebot", "input-state.txt")
}

// Load returns the stored input name. ok is false when no usable state
// exists, whatever the reason.
func (s *Store) Load() (value string, ok bool) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		s.logger().WithError(err).Debugln("no stored input state")
		return "", false
	}
	line, _, _ := strings.Cut(string(data), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	return line, true
}

// Save overwrites the stored input name, creating the parent directory if
// needed. Failures are logged, never surfaced.
func (s *Store) Save(value string) {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.logger().WithError(err).Warnf("could not create state directory %s", dir)
			return
		}
	}
	if err := os.WriteFile(s.Path, []byte(value+"\n"), 0o644); err != nil {
		s.logger().WithError(err).Warnf("could not save input state to %s", s.Path)
	}
}
