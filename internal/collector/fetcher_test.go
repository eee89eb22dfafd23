package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LJTian/AINewsHub/internal/config"
)

func TestClassifyFetchError(t *testing.T) {
	fe := classifyFetchError("src", context.DeadlineExceeded)
	if fe.Kind != FetchTimeout {
		t.Fatalf("deadline exceeded should classify as timeout, got %q", fe.Kind)
	}

	fe = classifyFetchError("src", errors.New("connection refused"))
	if fe.Kind != FetchNetwork {
		t.Fatalf("plain error should classify as network, got %q", fe.Kind)
	}

	if !errors.Is(classifyFetchError("src", context.DeadlineExceeded), context.DeadlineExceeded) {
		t.Fatal("FetchError should unwrap to the underlying error")
	}
}

func TestWithRetryEventualSuccess(t *testing.T) {
	policy := config.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

	calls := 0
	err := withRetry(context.Background(), policy, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("withRetry = %v, want success", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestWithRetryExhausted(t *testing.T) {
	policy := config.RetryPolicy{MaxAttempts: 2, Backoff: time.Millisecond}

	calls := 0
	wantErr := errors.New("always down")
	err := withRetry(context.Background(), policy, func(ctx context.Context) error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("withRetry = %v, want %v", err, wantErr)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

// 内容解析失败重试没有意义，第一次失败就应返回
func TestWithRetryStopsOnMalformed(t *testing.T) {
	policy := config.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

	calls := 0
	err := withRetry(context.Background(), policy, func(ctx context.Context) error {
		calls++
		return malformedError("src", errors.New("bad xml"))
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestWithRetryStopsOnCancel(t *testing.T) {
	policy := config.RetryPolicy{MaxAttempts: 5, Backoff: 50 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := withRetry(ctx, policy, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("fail then cancel")
	})
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (no retry after outer cancel)", calls)
	}
}

func TestWithRetryAppliesAttemptTimeout(t *testing.T) {
	policy := config.RetryPolicy{MaxAttempts: 1, Timeout: 10 * time.Millisecond}

	err := withRetry(context.Background(), policy, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("withRetry = %v, want deadline exceeded", err)
	}
}
