package studioapi

import "time"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Observer получает длительность и исход каждого вызова бэкенда
type Observer interface {
	ObserveBackendCall(endpoint, outcome string, duration time.Duration)
}
