package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a logger for mode: "production" (JSON), "development" (console)
// or "nop".
func New(mode string) (*zap.Logger, error) {
	switch mode {
	case "", "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	case "nop":
		return zap.NewNop(), nil
	}
	return nil, fmt.Errorf("unknown log mode %q", mode)
}
