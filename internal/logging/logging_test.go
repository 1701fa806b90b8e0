package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{name: "info at info level", level: log.InfoLevel, logFunc: func(l *log.Logger) { l.Info("test") }, wantLog: true},
		{name: "debug at info level", level: log.InfoLevel, logFunc: func(l *log.Logger) { l.Debug("test") }, wantLog: false},
		{name: "debug at debug level", level: log.DebugLevel, logFunc: func(l *log.Logger) { l.Debug("test") }, wantLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(New(&buf, tt.level))
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.InfoLevel)

	s := Install(l)
	t.Cleanup(func() { Install(log.Default()) })

	s.Info("group updated", "action", "rotation")
	assert.Contains(t, buf.String(), "group updated")
	assert.Contains(t, buf.String(), "rotation")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{in: "", want: log.InfoLevel},
		{in: "debug", want: log.DebugLevel},
		{in: " WARN ", want: log.WarnLevel},
		{in: "error", want: log.ErrorLevel},
		{in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	NewProgress(New(&buf, log.InfoLevel)).Done("script replayed")
	assert.Contains(t, buf.String(), "script replayed")
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, log.Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	l := New(&buf, log.InfoLevel)
	assert.Same(t, l, FromContext(WithLogger(context.Background(), l)))
}
