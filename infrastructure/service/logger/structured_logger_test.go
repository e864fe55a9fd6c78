package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestStructuredLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewStructuredLogger(LoggerConfig{Level: "info", Format: "json", ServiceName: "insights", Output: &buf})

	ctx := WithTenantID(WithCorrelationID(context.Background(), "cid-1"), "tenant-a")
	log.WithFields(map[string]interface{}{"component": "listing"}).
		Error(ctx, "evaluation failed", errors.New("boom"), map[string]interface{}{"entity_id": "p-1"})

	entry := decodeLine(t, &buf)
	assert.Equal(t, "evaluation failed", entry["msg"])
	assert.Equal(t, "insights", entry["service"])
	assert.Equal(t, "listing", entry["component"])
	assert.Equal(t, "cid-1", entry["correlation_id"])
	assert.Equal(t, "tenant-a", entry["tenant_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "p-1", entry["entity_id"])
	assert.Contains(t, entry["caller"], "structured_logger_test.go")
}

func TestStructuredLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewStructuredLogger(LoggerConfig{Level: "warn", Format: "json", Output: &buf})

	log.Info(context.Background(), "hidden", nil)
	assert.Zero(t, buf.Len())

	log.Warn(context.Background(), "shown", nil)
	assert.NotZero(t, buf.Len())
}

func TestLogCommitEvent(t *testing.T) {
	var buf bytes.Buffer
	log := NewStructuredLogger(LoggerConfig{Level: "info", Format: "json", Output: &buf})

	LogCommitEvent(context.Background(), log, "apply_price", false, map[string]interface{}{"product_id": "p-1"})

	entry := decodeLine(t, &buf)
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "commit", entry["event_type"])
	assert.Equal(t, "apply_price", entry["operation"])
	assert.Equal(t, false, entry["success"])
}

func TestLogPerformance(t *testing.T) {
	var buf bytes.Buffer
	log := NewStructuredLogger(LoggerConfig{Level: "info", Format: "json", Output: &buf})

	LogPerformance(context.Background(), log, "list_pricing_insights", 1500*time.Millisecond, map[string]interface{}{"surfaced": 3})

	entry := decodeLine(t, &buf)
	assert.Equal(t, "performance", entry["event_type"])
	assert.Equal(t, "list_pricing_insights", entry["operation"])
	assert.Equal(t, 1500.0, entry["duration_ms"])
	assert.Equal(t, 3.0, entry["surfaced"])
}
