package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	redisclient "github.com/aimingmed/sctracker-console/pkg/redis"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, _ := m.Get(ctx, "authToken"); ok {
		t.Fatalf("fresh storage should be empty")
	}
	if err := m.Set(ctx, "authToken", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, _ := m.Get(ctx, "authToken"); !ok || v != "abc" {
		t.Fatalf("expected abc, got %q ok=%v", v, ok)
	}
	if err := m.Remove(ctx, "authToken"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "authToken"); ok {
		t.Fatalf("expected key removed")
	}
}

func TestMemoryFactoryIsolatesWorkspaces(t *testing.T) {
	ctx := context.Background()
	factory := MemoryFactory()
	a, b := factory("a"), factory("b")

	_ = a.Set(ctx, "authToken", "token-a")
	if _, ok, _ := b.Get(ctx, "authToken"); ok {
		t.Fatalf("workspace b must not see workspace a's token")
	}
}

type fakeRedis struct {
	data    map[string]string
	touched []string
	getErr  error
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", redisclient.ErrNil
	}
	return v, nil
}

func (f *fakeRedis) Touch(_ context.Context, key string, _ time.Duration) error {
	f.touched = append(f.touched, key)
	return nil
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeRedis) StorageKey(workspaceID, name string) string {
	return "ws:" + workspaceID + ":" + name
}

func TestRedisStorageNamespacesAndSlidesExpiry(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRedis{data: map[string]string{}}
	s := NewRedis(fake, "w1", time.Hour)

	if _, ok, err := s.Get(ctx, "authToken"); ok || err != nil {
		t.Fatalf("missing key should read as absent, ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "authToken", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if fake.data["ws:w1:authToken"] != "abc" {
		t.Fatalf("value not namespaced: %v", fake.data)
	}
	v, ok, err := s.Get(ctx, "authToken")
	if err != nil || !ok || v != "abc" {
		t.Fatalf("unexpected read %q ok=%v err=%v", v, ok, err)
	}
	if len(fake.touched) != 1 {
		t.Fatalf("expected expiry touch on read, got %v", fake.touched)
	}
	if err := s.Remove(ctx, "authToken"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, exists := fake.data["ws:w1:authToken"]; exists {
		t.Fatalf("expected key deleted")
	}
}

func TestRedisStorageSurfacesErrors(t *testing.T) {
	fake := &fakeRedis{data: map[string]string{}, getErr: errors.New("conn refused")}
	s := NewRedis(fake, "w1", time.Hour)
	if _, _, err := s.Get(context.Background(), "authToken"); err == nil {
		t.Fatalf("expected transport error to surface")
	}
}
