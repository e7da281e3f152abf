package logging

import (
	"testing"

	"github.com/roostlabs/roost/pkg/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{
			name:   "json info",
			level:  "INFO",
			format: "json",
		},
		{
			name:   "text debug",
			level:  "DEBUG",
			format: "text",
		},
		{
			name:   "invalid level falls back to info",
			level:  "bogus",
			format: "json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.LoggingConfig{
				Level:  tt.level,
				Format: tt.format,
			}
			if err := InitLogger(cfg); err != nil {
				t.Fatalf("InitLogger() error = %v", err)
			}
			if Logger == nil {
				t.Fatal("Logger should be initialized")
			}
		})
	}
}

func TestGetLoggerFallback(t *testing.T) {
	old := Logger
	defer func() { Logger = old }()

	Logger = nil
	if GetLogger() == nil {
		t.Error("GetLogger() should never return nil")
	}
}

func TestWithComponent(t *testing.T) {
	logger := WithComponent("importer")
	if logger == nil {
		t.Error("WithComponent() should return a logger")
	}
}
