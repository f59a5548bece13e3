package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface shared by all components. Both
// *logrus.Logger and *logrus.Entry satisfy it.
type Logger interface {
	logrus.FieldLogger
	Writer() *io.PipeWriter
}

// New returns a root logger at the given level. Unrecognized level strings
// fall back to info.
func New(level string) *logrus.Logger {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// ForComponent returns a child logger tagged with the component name.
func ForComponent(log Logger, component string) Logger {
	return log.WithField("component", component)
}
