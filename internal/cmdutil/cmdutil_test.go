package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerLevels(t *testing.T) {
	cases := []struct {
		name           string
		level          string
		quiet, verbose bool
		want           []string
	}{
		{"default", "", false, false, []string{"INFO", "WARN", "ERROR"}},
		{"warn", "warn", false, false, []string{"WARN", "ERROR"}},
		{"quiet wins", "debug", true, true, []string{"ERROR"}},
		{"verbose", "error", false, true, []string{"DEBUG", "INFO", "WARN", "ERROR"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := NewLogger(&buf, c.level, c.quiet, c.verbose)
			require.NoError(t, err)
			log.Debug("d")
			log.Info("i")
			log.Warn("w", zap.String("source", "a.mitab"))
			log.Error("e")
			out := buf.String()
			for _, lvl := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
				if contains(c.want, lvl) {
					assert.Contains(t, out, lvl+"\t")
				} else {
					assert.NotContains(t, out, lvl+"\t")
				}
			}
		})
	}
}

func TestNewLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(&buf, "", false, false)
	require.NoError(t, err)
	log.Warn("skipping malformed record", zap.String("source", "a.mitab"), zap.Int("line", 3))
	assert.Equal(t, "WARN\tskipping malformed record\t{\"source\": \"a.mitab\", \"line\": 3}\n", buf.String())
}

func TestNewLoggerBadLevel(t *testing.T) {
	_, err := NewLogger(io.Discard, "loud", false, false)
	require.Error(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitUsage, ExitCode(fmt.Errorf("%w: no inputs", ErrUsage)))
	assert.Equal(t, ExitUsage, ExitCode(Usagef("no input matched %q", "*.mitab")))
	assert.Equal(t, ExitInterrupted, ExitCode(fmt.Errorf("merge: %w", context.Canceled)))
	assert.Equal(t, ExitOK, ExitCode(fmt.Errorf("write: %w", syscall.EPIPE)))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func TestUsagef(t *testing.T) {
	err := Usagef("at least %d input file is required", 1)
	assert.EqualError(t, err, "at least 1 input file is required")
	assert.ErrorIs(t, err, ErrUsage)
	assert.NotErrorIs(t, errors.New("x"), ErrUsage)
}
