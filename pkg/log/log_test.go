package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prevOut, prevLevel, prevFormatter := logger.Out, logger.GetLevel(), logger.Formatter
	logger.SetOutput(buf)
	t.Cleanup(func() {
		logger.SetOutput(prevOut)
		logger.SetLevel(prevLevel)
		logger.Formatter = prevFormatter
	})
	return buf
}

func TestConfigure(t *testing.T) {
	captureOutput(t)

	require.NoError(t, Configure("debug", "json"))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	assert.Error(t, Configure("chatty", "text"))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestOpHelpersCarryFields(t *testing.T) {
	buf := captureOutput(t)
	require.NoError(t, Configure("info", "json"))

	WebhookOp("qr_received", "http://hook").Info("delivered")
	assert.Contains(t, buf.String(), `"module":"webhook"`)
	assert.Contains(t, buf.String(), `"event":"qr_received"`)

	buf.Reset()
	SysErr("store", errors.New("boom")).Error("failed")
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestWhatsAppLoggerSub(t *testing.T) {
	buf := captureOutput(t)
	require.NoError(t, Configure("debug", "json"))

	WhatsApp("Client").Sub("Socket").Warnf("frame %d dropped", 3)
	assert.Contains(t, buf.String(), `"module":"Client/Socket"`)
	assert.Contains(t, buf.String(), "frame 3 dropped")
}

func TestConfigureFromEnvWarnsOnUnknownLevel(t *testing.T) {
	buf := captureOutput(t)
	require.NoError(t, Configure("info", "json"))

	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("LOG_FORMAT", "json")
	configureFromEnv()

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), `"level":"warning"`)
	assert.Contains(t, buf.String(), "Invalid LOG_LEVEL 'chatty', keeping info")
}
