package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// instantRetry returns a RetryProvider that records waits instead of
// sleeping.
func instantRetry(inner Provider, attempts int) (*RetryProvider, *[]time.Duration) {
	var waits []time.Duration
	r := WithRetry(inner, RetryConfig{
		MaxAttempts: attempts,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     time.Second,
		Multiplier:  2,
	}).(*RetryProvider)
	r.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return r, &waits
}

var okResponse = MockResponse{Content: json.RawMessage(`{"ok":true}`)}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("503")}}
}

func TestRetry_Outcomes(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{okResponse}, false, 1},
		{"transient then ok", []MockResponse{unavailable(), okResponse}, false, 2},
		{"all attempts fail", []MockResponse{unavailable(), unavailable(), unavailable(), okResponse}, true, 3},
		{
			"truncation is final",
			[]MockResponse{{Err: &ErrMaxTokensExceeded{}}, okResponse},
			true, 1,
		},
		{
			"rejected request is final",
			[]MockResponse{{Err: &ErrRequestRejected{StatusCode: 401, Err: errors.New("bad key")}}, okResponse},
			true, 1,
		},
		{
			"invalid response retried once",
			[]MockResponse{
				{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
				{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
				okResponse,
			},
			true, 2,
		},
		{
			"invalid then transient then ok",
			[]MockResponse{{Err: &ErrInvalidResponse{Err: errors.New("bad")}}, unavailable(), okResponse},
			false, 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p, _ := instantRetry(mock, 3)

			_, err := p.Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_BackoffGrowsAndCaps(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), unavailable(), unavailable(), unavailable())
	p, waits := instantRetry(mock, 5)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	// Base waits: 100ms, 200ms, 400ms, 800ms; each jittered into [d/2, d].
	want := []time.Duration{100, 200, 400, 800}
	if len(*waits) != len(want) {
		t.Fatalf("waits = %v", *waits)
	}
	for i, w := range *waits {
		base := want[i] * time.Millisecond
		if w < base/2 || w > base {
			t.Errorf("wait[%d] = %v, want in [%v, %v]", i, w, base/2, base)
		}
	}
}

func TestRetry_RateLimitUsesRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 300 * time.Millisecond}},
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Minute}},
		okResponse,
	)
	p, waits := instantRetry(mock, 3)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if (*waits)[0] != 300*time.Millisecond {
		t.Errorf("first wait = %v, want 300ms", (*waits)[0])
	}
	if (*waits)[1] != time.Second {
		t.Errorf("second wait = %v, want capped at 1s", (*waits)[1])
	}
}

func TestRetry_CanceledContextStopsBetweenAttempts(t *testing.T) {
	mock := NewMockProvider(unavailable(), okResponse)
	p, _ := instantRetry(mock, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_ContextErrorFromProviderIsFinal(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: context.DeadlineExceeded}, okResponse)
	p, _ := instantRetry(mock, 3)

	if _, err := p.Generate(context.Background(), Request{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(okResponse)
	p := WithRetry(mock, RetryConfig{})
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID() = %q, want mock", p.ModelID())
	}
}

func TestSleepCtx(t *testing.T) {
	if err := sleepCtx(context.Background(), time.Millisecond); err != nil {
		t.Errorf("sleepCtx = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepCtx(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleepCtx on canceled ctx = %v", err)
	}
}
