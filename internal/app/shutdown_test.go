package app

import (
	"context"
	"testing"

	"olx-listings-parser/internal/observability"
)

func TestWithShutdownStopCancels(t *testing.T) {
	ctx, stop := WithShutdown(context.Background(), observability.NewNop())
	if ctx.Err() != nil {
		t.Fatalf("context cancelled before stop: %v", ctx.Err())
	}

	stop()
	<-ctx.Done()
	if ctx.Err() != context.Canceled {
		t.Errorf("ctx.Err() = %v, want context.Canceled", ctx.Err())
	}
}
