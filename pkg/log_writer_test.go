package pkg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestLogWriter_Write(t *testing.T) {
	sb1 := &strings.Builder{}
	sb1.WriteString("already-here|")
	sb2 := &strings.Builder{}

	lw := NewLogWriter(sb1, sb2)
	require.Equal(t, 2, lw.Sinks())

	n, err := lw.Write([]byte("first line\n"))
	require.NoError(t, err)
	assert.Equal(t, len("first line\n"), n)
	_, err = lw.Write([]byte("second line\n"))
	require.NoError(t, err)

	assert.Equal(t, "already-here|first line\nsecond line\n", sb1.String())
	assert.Equal(t, "first line\nsecond line\n", sb2.String())
}

func TestLogWriter_Write_OneSinkFails(t *testing.T) {
	sb := &strings.Builder{}
	lw := NewLogWriter(&faultyWriter{}, sb)

	n, err := lw.Write([]byte("a message"))
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, len("a message"), n)
	assert.Equal(t, "a message", sb.String())
}

func TestLogWriter_Write_AllSinksFail(t *testing.T) {
	lw := NewLogWriter(&faultyWriter{}, &faultyWriter{})

	n, err := lw.Write([]byte("a message"))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Zero(t, n)
}

type faultyWriter struct{}

func (fw *faultyWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}
