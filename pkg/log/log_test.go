package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCtxReturnsStoredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str(FieldEntityID, "u1").Logger()

	ctx := WithLogger(context.Background(), logger)
	Ctx(ctx).Info().Msg("event applied")

	assert.Contains(t, buf.String(), `"entity_id":"u1"`)
	assert.Contains(t, buf.String(), "event applied")
}

func TestCtxFallsBackToGlobal(t *testing.T) {
	assert.Equal(t, L(), Ctx(context.Background()))
}

func TestLevelParsing(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, level("debug"))
	assert.Equal(t, zerolog.WarnLevel, level(" WARNING "))
	assert.Equal(t, zerolog.ErrorLevel, level("error"))
	assert.Equal(t, zerolog.InfoLevel, level("bogus"))
}
