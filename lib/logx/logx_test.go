package logx

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureOutput(logger *logrus.Logger) (*bytes.Buffer, func()) {
	var buf bytes.Buffer
	prev := logger.Out
	logger.SetOutput(&buf)
	return &buf, func() {
		logger.SetOutput(prev)
	}
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	var entry map[string]interface{}
	assert.Nil(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestInfof(t *testing.T) {
	buf, restore := captureOutput(infoLogger)
	defer restore()

	Infof("%s and %s", "hello", "world")
	entry := decode(t, buf)
	assert.Equal(t, "hello and world", entry["content"])
	assert.Equal(t, "info", entry["level"])
	assert.NotEmpty(t, entry["@timestamp"])
}

func TestErrorWithCaller(t *testing.T) {
	buf, restore := captureOutput(errorLogger)
	defer restore()

	Error("boom")
	entry := decode(t, buf)
	content := entry["content"].(string)
	assert.True(t, strings.HasPrefix(content, "logx_test.go:"), content)
	assert.True(t, strings.HasSuffix(content, " boom"), content)
}

func TestWithDuration(t *testing.T) {
	buf, restore := captureOutput(slowLogger)
	defer restore()

	WithDuration(time.Second + 500*time.Millisecond).Slowf("slow %s", "sql")
	entry := decode(t, buf)
	assert.Equal(t, "slow sql", entry["content"])
	assert.Equal(t, "1500.0ms", entry["duration"])
	assert.Equal(t, "slow", entry["type"])
}

func TestStatf(t *testing.T) {
	buf, restore := captureOutput(statLogger)
	defer restore()

	Statf("flushed %d", 3)
	entry := decode(t, buf)
	assert.Equal(t, "flushed 3", entry["content"])
	assert.Equal(t, "stat", entry["type"])
}

func TestSetLevel(t *testing.T) {
	buf, restore := captureOutput(infoLogger)
	defer restore()
	defer SetLevel(InfoLevel)

	SetLevel(ErrorLevel)
	Info("ignored")
	assert.Equal(t, 0, buf.Len())

	SetLevel(InfoLevel)
	Info("kept")
	assert.True(t, buf.Len() > 0)
}

func TestSetupErrors(t *testing.T) {
	assert.Equal(t, ErrLogPathNotSet, Setup(LogConf{Mode: "file"}))
	assert.Equal(t, ErrLogServiceNameNotSet, Setup(LogConf{Mode: volumeMode, Path: "logs"}))
}
