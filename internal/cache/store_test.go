package cache

import (
	"context"
	"testing"
	"time"
)

type cartPayload struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func TestMemoryStoreRoundTripAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.SetJSON(ctx, "guest_cart:abc", []cartPayload{{ProductID: 1, Quantity: 2}}, 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	var got []cartPayload
	found, err := store.GetJSON(ctx, "guest_cart:abc", &got)
	if err != nil || !found {
		t.Fatalf("expected hit, found=%v err=%v", found, err)
	}
	if len(got) != 1 || got[0].Quantity != 2 {
		t.Fatalf("unexpected payload: %+v", got)
	}

	if err := store.Del(ctx, "guest_cart:abc"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	found, err = store.GetJSON(ctx, "guest_cart:abc", &got)
	if err != nil || found {
		t.Fatalf("expected miss after delete, found=%v err=%v", found, err)
	}
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.SetJSON(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	now = now.Add(59 * time.Second)
	var v string
	if found, _ := store.GetJSON(ctx, "k", &v); !found {
		t.Fatalf("entry should still be alive")
	}
	now = now.Add(time.Second)
	if found, _ := store.GetJSON(ctx, "k", &v); found {
		t.Fatalf("entry should have expired")
	}
}

func TestBuildKey(t *testing.T) {
	if got := buildKey("pianao", " checkout:1 "); got != "pianao:checkout:1" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := buildKey("pianao", ""); got != "pianao" {
		t.Fatalf("unexpected empty key: %s", got)
	}
}

func TestNewStoreFallsBackToMemory(t *testing.T) {
	if Enabled() {
		t.Skip("redis initialised in this process")
	}
	if _, ok := NewStore().(*MemoryStore); !ok {
		t.Fatalf("expected memory store when redis disabled")
	}
}

func TestMemoryStoreSetMembers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.SAdd(ctx, "catalog:products", "a", "b", "a"); err != nil {
		t.Fatalf("sadd failed: %v", err)
	}
	members, err := store.SMembers(ctx, "catalog:products")
	if err != nil || len(members) != 2 {
		t.Fatalf("want 2 members got %v (%v)", members, err)
	}
	if err := store.SRem(ctx, "catalog:products", "a"); err != nil {
		t.Fatalf("srem failed: %v", err)
	}
	members, _ = store.SMembers(ctx, "catalog:products")
	if len(members) != 1 || members[0] != "b" {
		t.Fatalf("want [b] got %v", members)
	}
	if err := store.Del(ctx, "catalog:products"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if members, _ := store.SMembers(ctx, "catalog:products"); len(members) != 0 {
		t.Fatalf("set should be gone after delete: %v", members)
	}
}

func TestMemoryStoreSweepsExpiredOnWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for _, key := range []string{"guest_cart:1", "guest_cart:2", "guest_cart:3"} {
		if err := store.SetJSON(ctx, key, []cartPayload{{ProductID: 1, Quantity: 1}}, time.Hour); err != nil {
			t.Fatalf("set failed: %v", err)
		}
	}
	if store.Len() != 3 {
		t.Fatalf("want 3 entries got %d", store.Len())
	}

	// 放弃的游客购物车不会再被读取，写入时也要被清理
	now = now.Add(2 * time.Hour)
	if err := store.SetJSON(ctx, "checkout:9", "terms", 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expired entries should be swept, got %d", store.Len())
	}
}
