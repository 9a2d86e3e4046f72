package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		logger, err := New(verbose)
		if err != nil {
			t.Fatalf("New(%v): %v", verbose, err)
		}
		if got := logger.Core().Enabled(zapcore.DebugLevel); got != verbose {
			t.Errorf("debug enabled = %v with verbose=%v", got, verbose)
		}
		if !logger.Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("info disabled with verbose=%v", verbose)
		}
	}
}
