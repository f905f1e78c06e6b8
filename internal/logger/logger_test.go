package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapWrapper_WritesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewZapAdapter(zap.New(core))

	log.WithFields(map[string]interface{}{"formId": "abc"}).Warn("form mapping not found", map[string]interface{}{
		"fieldCount": 2,
	})

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "form mapping not found", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "abc", ctx["formId"])
	assert.EqualValues(t, 2, ctx["fieldCount"])
}

func TestZapWrapper_WithError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := NewZapAdapter(zap.New(core))

	log.WithError(errors.New("boom")).Error("dispatch failed", nil)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])
}

func TestNew_LevelFiltering(t *testing.T) {
	l := New("warn", "json")
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))
}
