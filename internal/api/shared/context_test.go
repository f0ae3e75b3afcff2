package shared_test

import (
	"context"
	"testing"

	"github.com/Icezero0/Oblivionis/internal/api/shared"
	"github.com/stretchr/testify/assert"
)

func TestSetTraceID(t *testing.T) {
	t.Parallel()

	ctx := shared.SetTraceID(context.Background())
	traceID := shared.GetTraceID(ctx)

	assert.NotEmpty(t, traceID)
	assert.Len(t, traceID, 32)
}

func TestSetTraceIDUnique(t *testing.T) {
	t.Parallel()

	first := shared.GetTraceID(shared.SetTraceID(context.Background()))
	second := shared.GetTraceID(shared.SetTraceID(context.Background()))

	assert.NotEqual(t, first, second)
}

func TestGetTraceIDMissing(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", shared.GetTraceID(context.Background()))
}
