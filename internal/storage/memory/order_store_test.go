package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pjm714059-code/baro-toss-test/internal/domain"
)

func TestOrderStore_PutGetDelete(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	store := NewOrderStore(10 * time.Minute)

	order := domain.Order{ID: "BARO_1_aa_bb", Amount: 1000, OrderName: "Widget", CreatedAt: now}
	store.Put(order.ID, order)

	got, ok := store.Get(order.ID, now)
	if !ok {
		t.Fatalf("expected order present")
	}
	if got.Amount != 1000 || got.OrderName != "Widget" {
		t.Fatalf("unexpected order %+v", got)
	}

	if _, ok := store.Get("missing", now); ok {
		t.Fatalf("expected missing order absent")
	}

	store.Delete(order.ID)
	if _, ok := store.Get(order.ID, now); ok {
		t.Fatalf("expected deleted order absent")
	}
}

func TestOrderStore_ExpiredTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	store := NewOrderStore(10 * time.Minute)
	store.Put("id-1", domain.Order{ID: "id-1", Amount: 500, CreatedAt: now})

	// Still physically present but past TTL: Get must report it absent.
	late := now.Add(10*time.Minute + time.Millisecond)
	if _, ok := store.Get("id-1", late); ok {
		t.Fatalf("expected expired order to be reported absent")
	}
	if store.Len() != 1 {
		t.Fatalf("expected record still physically present before sweep")
	}

	// Exactly at TTL it is still valid.
	if _, ok := store.Get("id-1", now.Add(10*time.Minute)); !ok {
		t.Fatalf("expected order valid at exactly TTL")
	}
}

func TestOrderStore_Sweep(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	store := NewOrderStore(10 * time.Minute)
	store.Put("old-1", domain.Order{ID: "old-1", CreatedAt: now.Add(-11 * time.Minute)})
	store.Put("old-2", domain.Order{ID: "old-2", CreatedAt: now.Add(-time.Hour)})
	store.Put("fresh", domain.Order{ID: "fresh", CreatedAt: now.Add(-time.Minute)})

	store.Sweep(now)

	if store.Len() != 1 {
		t.Fatalf("expected 1 record after sweep, got %d", store.Len())
	}
	if _, ok := store.Get("fresh", now); !ok {
		t.Fatalf("expected fresh order to survive sweep")
	}
}

func TestOrderStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	store := NewOrderStore(10 * time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := fmt.Sprintf("id-%d-%d", i, j)
				store.Put(id, domain.Order{ID: id, CreatedAt: now})
				store.Get(id, now)
				store.Sweep(now)
				store.Delete(id)
			}
		}()
	}
	wg.Wait()

	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d records", store.Len())
	}
}
