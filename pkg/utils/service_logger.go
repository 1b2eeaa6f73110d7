package utils

import "go.uber.org/zap"

// ServiceLogger adapts a zap logger to the keysAndValues logging interfaces
// declared by the application and HTTP layers.
type ServiceLogger struct {
	s *zap.SugaredLogger
}

// NewServiceLogger creates a new ServiceLogger
func NewServiceLogger(logger *zap.Logger) *ServiceLogger {
	return &ServiceLogger{s: logger.Sugar()}
}

func (l *ServiceLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l *ServiceLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}

func (l *ServiceLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}
