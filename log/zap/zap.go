// Package zap adapts a *zap.Logger to glcache.Logger.
package zap

import (
	"github.com/unkn0wn-root/glcache"
	"go.uber.org/zap"
)

var _ glcache.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

// New names l "glcache" so cache events can be filtered by logger name.
func New(l *zap.Logger) ZapLogger { return ZapLogger{L: l.Named("glcache")} }

func (z ZapLogger) Debug(msg string, f glcache.Fields) {
	if ce := z.L.Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(zf(f)...)
	}
}
func (z ZapLogger) Info(msg string, f glcache.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f glcache.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f glcache.Fields) { z.L.Error(msg, zf(f)...) }

// zf converts fields; Param values are logged through their hex Stringer.
func zf(f glcache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
