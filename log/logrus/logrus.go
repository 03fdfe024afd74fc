package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/cachegen"
)

var _ cachegen.Logger = Logger{}

type Logger struct{ E *logrus.Entry }

// New tags every entry with component=cachegen.
func New(l *logrus.Logger) Logger {
	return Logger{E: l.WithField("component", "cachegen")}
}

func (l Logger) Debug(msg string, f cachegen.Fields) { l.E.WithFields(logrus.Fields(f)).Debug(msg) }
func (l Logger) Info(msg string, f cachegen.Fields)  { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l Logger) Warn(msg string, f cachegen.Fields)  { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l Logger) Error(msg string, f cachegen.Fields) { l.E.WithFields(logrus.Fields(f)).Error(msg) }
