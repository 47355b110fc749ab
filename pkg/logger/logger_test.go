package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := WithWriter(&buf, "warn")

	l.Info().Msg("oculto")
	assert.Zero(t, buf.Len())

	l.Warn().Str("number", "INV/2025/05/003").Msg("visible")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "INV/2025/05/003", line["number"])
	assert.Equal(t, "visible", line["message"])
}

func TestNop_Discards(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() { l.Error().Msg("nada") })
}

func TestParseLevel_DefaultsToInfo(t *testing.T) {
	assert.Equal(t, "info", parseLevel("").String())
	assert.Equal(t, "debug", parseLevel("debug").String())
	assert.Equal(t, "info", parseLevel("verbose").String())
}
