package testutil

import (
	"context"
	"time"

	"github.com/metaraffle/backend/pkg/xredis"
)

// MockRedisClient behaves like an empty cache unless a func is set.
type MockRedisClient struct {
	GetObjFunc func(ctx context.Context, key string, v any) error
	SetObjFunc func(ctx context.Context, key string, obj any, ttl time.Duration) error
	DelFunc    func(ctx context.Context, keys ...string) error
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if m.GetObjFunc == nil {
		return xredis.ErrNotFound
	}

	return m.GetObjFunc(ctx, key, v)
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	if m.SetObjFunc == nil {
		return nil
	}

	return m.SetObjFunc(ctx, key, obj, ttl)
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	if m.DelFunc == nil {
		return nil
	}

	return m.DelFunc(ctx, keys...)
}
