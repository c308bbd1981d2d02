package middleware

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics учет HTTP запросов
type Metrics interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}
