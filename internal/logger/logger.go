package logger

import "go.uber.org/zap"

// New builds the process logger. Set APP_ENV=production for JSON output.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
