package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturingLoggerAccumulatesMessages(t *testing.T) {
	var logger CapturingLogger
	logger.Printf("first %d", 1)
	logger.Printf("second %s", "message")

	output := logger.Output()
	require.Len(t, output, 2)
	assert.Equal(t, "first 1", output[0].Message)
	assert.Equal(t, "second message", output[1].Message)
	assert.False(t, output[0].Time.IsZero())
}

func TestCapturedOutputDump(t *testing.T) {
	var logger CapturingLogger
	logger.Printf("something happened")

	var buf bytes.Buffer
	logger.Output().Dump(&buf, "    DEBUG ")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "    DEBUG ["))
	assert.True(t, strings.HasSuffix(lines[0], "] something happened"))
}

func TestLoggerWithPrefix(t *testing.T) {
	var base CapturingLogger
	logger := LoggerWithPrefix(&base, "[mock] ")
	logger.Printf("hit %s", "/api/v2/things")

	output := base.Output()
	require.Len(t, output, 1)
	assert.Equal(t, "[mock] hit /api/v2/things", output[0].Message)
}
