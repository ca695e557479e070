// Package logrus adapts a *logrus.Entry to glcache.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/glcache"
)

var _ glcache.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

// New tags every entry with component=glcache.
func New(l *logrus.Logger) LogrusLogger {
	return LogrusLogger{E: l.WithField("component", "glcache")}
}

func (l LogrusLogger) Debug(msg string, f glcache.Fields) {
	if l.E.Logger.IsLevelEnabled(logrus.DebugLevel) {
		l.E.WithFields(fields(f)).Debug(msg)
	}
}
func (l LogrusLogger) Info(msg string, f glcache.Fields) { l.E.WithFields(fields(f)).Info(msg) }
func (l LogrusLogger) Warn(msg string, f glcache.Fields) { l.E.WithFields(fields(f)).Warn(msg) }
func (l LogrusLogger) Error(msg string, f glcache.Fields) {
	l.E.WithFields(fields(f)).Error(msg)
}

// fields renders Params as hex; logrus formatters print bare uint32 otherwise.
func fields(f glcache.Fields) logrus.Fields {
	out := make(logrus.Fields, len(f))
	for k, v := range f {
		if p, ok := v.(glcache.Param); ok {
			out[k] = p.String()
			continue
		}
		out[k] = v
	}
	return out
}
