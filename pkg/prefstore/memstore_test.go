package prefstore_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ghostquant/voicequery/pkg/prefstore"
)

func TestMemStore_GetMiss(t *testing.T) {
	t.Parallel()

	s := prefstore.NewMemStore()
	v, ok, err := s.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || v != "" {
		t.Errorf("Get(absent) = (%q, %v), want miss", v, ok)
	}
}

func TestMemStore_SetGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := prefstore.NewMemStore()

	if err := s.Set(ctx, "voicequery:lang:u1", "es"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "voicequery:lang:u1", "fr"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	v, ok, err := s.Get(ctx, "voicequery:lang:u1")
	if err != nil || !ok {
		t.Fatalf("Get = (%q, %v, %v)", v, ok, err)
	}
	if v != "fr" {
		t.Errorf("Get = %q, want fr (last write wins)", v)
	}
}

func TestMemStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := prefstore.NewMemStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			if err := s.Set(ctx, key, "v"); err != nil {
				t.Errorf("Set(%s): %v", key, err)
			}
			if _, _, err := s.Get(ctx, key); err != nil {
				t.Errorf("Get(%s): %v", key, err)
			}
		}(i)
	}
	wg.Wait()
}
