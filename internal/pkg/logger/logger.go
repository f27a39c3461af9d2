package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/doeshing/ciphervault/internal/ports"
)

// LogrusLogger implements ports.Logger on top of logrus.
type LogrusLogger struct {
	log *logrus.Logger
}

// New creates a logger writing to stderr. Verbose enables debug output;
// otherwise only warnings and errors are shown.
func New(verbose bool) *LogrusLogger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(out io.Writer, verbose bool) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: !verbose, FullTimestamp: verbose})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return &LogrusLogger{log: l}
}

// Discard drops every message; used by tests.
func Discard() *LogrusLogger {
	return NewWithWriter(io.Discard, false)
}

func (l *LogrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *LogrusLogger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *LogrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *LogrusLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).WithError(err).Error(msg)
}

var _ ports.Logger = (*LogrusLogger)(nil)
