package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

type retryProbeCommand struct {
	ID string
}

func (retryProbeCommand) Type() string { return "cms.test.retry_probe" }

func (retryProbeCommand) Validate() error { return nil }

type exhaustProbeCommand struct{}

func (exhaustProbeCommand) Type() string { return "cms.test.exhaust_probe" }

func (exhaustProbeCommand) Validate() error { return nil }

func TestDispatcherRetriesUntilSuccess(t *testing.T) {
	var attempts int
	handler := NewHandler(func(ctx context.Context, _ retryProbeCommand) error {
		attempts++
		if attempts == 1 {
			return errors.New("upstream hiccup")
		}
		return nil
	}, WithTimeout[retryProbeCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), retryProbeCommand{ID: "abc"}); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestDispatcherRetryExhaustionPropagatesError(t *testing.T) {
	var attempts int
	handler := NewHandler(func(ctx context.Context, _ exhaustProbeCommand) error {
		attempts++
		return errors.New("permanent failure")
	}, WithTimeout[exhaustProbeCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), exhaustProbeCommand{}); err == nil {
		t.Fatal("expected dispatcher to return error after exhausting retries")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}
