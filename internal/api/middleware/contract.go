package middleware

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsCollector HTTP метрики
type MetricsCollector interface {
	ObserveHTTPRequest(method, route string, status int, seconds float64)
}
