package collector

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/LJTian/AINewsHub/internal/config"
)

// RawRecord 采集到的原始记录。feed 与 search 两种来源形态不同，
// 用显式的变体字段区分，归一化时按 Kind 分派，不做字段探测。
type RawRecord struct {
	Kind   string // config.SourceKindFeed / config.SourceKindSearch
	Feed   *FeedEntry
	Search *SearchHit
}

// FeedEntry RSS/Atom 条目的原始形态
type FeedEntry struct {
	Title     string
	Link      string
	Summary   string
	Content   string
	Published *time.Time
	Tags      []string
}

// SearchHit 搜索服务返回的单条结果，时间为服务方给出的原始文本
type SearchHit struct {
	Title       string
	URL         string
	Snippet     string
	Source      string
	PublishTime string
}

// Fetcher 抽象一种采集方式；每个实现只认自己的 Kind
type Fetcher interface {
	Kind() string
	Fetch(ctx context.Context, src config.Source) ([]RawRecord, error)
}

// FetchError 的失败类别
const (
	FetchTimeout   = "timeout"
	FetchNetwork   = "network"
	FetchMalformed = "malformed"
)

// FetchError 单个数据源的采集失败，按类别区分以便上层统计
type FetchError struct {
	SourceID string
	Kind     string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%s): %v", e.SourceID, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// classifyFetchError 把底层错误归入 FetchError 类别
func classifyFetchError(sourceID string, err error) *FetchError {
	kind := FetchNetwork
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = FetchTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = FetchTimeout
	}
	return &FetchError{SourceID: sourceID, Kind: kind, Err: err}
}

// malformedError 响应可达但内容不可解析
func malformedError(sourceID string, err error) *FetchError {
	return &FetchError{SourceID: sourceID, Kind: FetchMalformed, Err: err}
}

// withRetry 按策略重试 fn。每次尝试带独立超时，尝试之间等待 Backoff。
func withRetry(ctx context.Context, policy config.RetryPolicy, fn func(ctx context.Context) error) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 && policy.Backoff > 0 {
			select {
			case <-time.After(policy.Backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		attemptCtx := ctx
		var cancel context.CancelFunc
		if policy.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, policy.Timeout)
		}
		err := fn(attemptCtx)
		if cancel != nil {
			cancel()
		}
		if err == nil {
			return nil
		}
		lastErr = err
		// 外层取消不再重试
		if ctx.Err() != nil {
			return lastErr
		}
		// 内容解析失败重试没有意义
		var fe *FetchError
		if errors.As(err, &fe) && fe.Kind == FetchMalformed {
			return lastErr
		}
	}
	return lastErr
}
