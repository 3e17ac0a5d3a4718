package config

import (
	"go.uber.org/zap"
)

// NewLogger builds the process logger: human-readable in development,
// JSON in production.
func NewLogger(settings *Settings) (*zap.Logger, error) {
	if settings.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
