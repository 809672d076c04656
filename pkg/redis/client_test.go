package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRecordFailureSetsWindowOnce(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	for i := 1; i <= 3; i++ {
		count, err := client.RecordFailure(ctx, "10.0.0.1", time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != int64(i) {
			t.Fatalf("expected counter %d got %d", i, count)
		}
	}
	if len(mock.expireCalls) != 1 {
		t.Fatalf("expected a single expire call, got %d", len(mock.expireCalls))
	}
	if mock.expireCalls[0].ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", mock.expireCalls[0].ttl)
	}

	got, err := client.Failures(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Fatalf("expected 3 failures, got %d", got)
	}
}

func TestFailuresMissingKeyIsZero(t *testing.T) {
	client := &Client{store: newMockCmdable()}
	got, err := client.Failures(context.Background(), "10.0.0.9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected zero failures, got %d", got)
	}
}

func TestSetNXOnlyOnce(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}

	ok, err := client.SetNX(ctx, "k", "v1", time.Hour)
	if err != nil || !ok {
		t.Fatalf("first SetNX should succeed, ok=%v err=%v", ok, err)
	}
	ok, err = client.SetNX(ctx, "k", "v2", time.Hour)
	if err != nil || ok {
		t.Fatalf("second SetNX should be rejected, ok=%v err=%v", ok, err)
	}
	v, err := client.Get(ctx, "k")
	if err != nil || v != "v1" {
		t.Fatalf("expected original value, got %q err=%v", v, err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.IdempotencyKey("scope", "id"); got != "shopadmin:idempotency:scope:id" {
		t.Fatalf("unexpected idempotency key %s", got)
	}
	if got := client.AuthFailureKey("1.2.3.4"); got != "shopadmin:auth_failures:1.2.3.4" {
		t.Fatalf("unexpected failure key %s", got)
	}
	if got := client.IdempotencyKey("", "id"); got != "shopadmin:idempotency:id" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestUninitializedClientErrors(t *testing.T) {
	client := &Client{}
	if _, err := client.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
}

type mockCmdable struct {
	data        map[string]string
	expireCalls []expireCall
}

type expireCall struct {
	key string
	ttl time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(_ context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	var current int64
	fmt.Sscan(m.data[key], &current)
	current++
	m.data[key] = fmt.Sprint(current)
	return redis.NewIntResult(current, nil)
}

func (m *mockCmdable) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, expireCall{key: key, ttl: expiration})
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
