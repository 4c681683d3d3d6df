package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"stockroom/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput(&buf, "debug", "json")

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("product_id", 3).Info("imported")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "imported", entry["msg"])
	assert.Equal(t, float64(3), entry["product_id"])
}

func TestNewWithOutput_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput(&buf, "loud", "text")

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	log.Debug("hidden")
	assert.Empty(t, buf.String())
}
