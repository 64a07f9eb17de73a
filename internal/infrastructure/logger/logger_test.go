package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{input: "debug", want: zerolog.DebugLevel},
		{input: "info", want: zerolog.InfoLevel},
		{input: "warn", want: zerolog.WarnLevel},
		{input: "error", want: zerolog.ErrorLevel},
		{input: "verbose", want: zerolog.InfoLevel},
		{input: "", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewAppliesLevel(t *testing.T) {
	log := New(Config{Level: "error", Format: "json"})
	if log.GetLevel() != zerolog.ErrorLevel {
		t.Errorf("logger level = %v, want error", log.GetLevel())
	}
}
