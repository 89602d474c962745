package logger

import (
	"context"
	"testing"

	"github.com/jaennil/guide_helper/raster/pkg/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestFromContextFallsBackToNoOp(t *testing.T) {
	l := FromContext(context.Background())
	assert.IsType(t, &noOpLogger{}, l)
}

func TestWithLoggerRoundTrip(t *testing.T) {
	zl := NewZapLogger(config.Logger{Level: "debug"})
	ctx := WithLogger(context.Background(), zl)
	assert.Same(t, zl, FromContext(ctx))
}

func TestToZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, toZapLevel("debug"))
	assert.Equal(t, zapcore.ErrorLevel, toZapLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, toZapLevel("loud"))
}
