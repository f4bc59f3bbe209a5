package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a production JSON logger tagged with the service name.
func New(service string, level string) (*zap.Logger, error) {

	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel
	cfg.InitialFields = map[string]any{"service": service}

	return cfg.Build()
}
