package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	t.Run("caches_on_success", func(t *testing.T) {
		c := New()
		var calls atomic.Int32

		fetch := func(context.Context) ([]string, error) {
			calls.Add(1)
			return []string{"a", "b"}, nil
		}

		key := Key(KeyBusinesses, 1)
		first, err := Fetch(context.Background(), c, key, fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Fetch(context.Background(), c, key, fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if calls.Load() != 1 {
			t.Errorf("expected 1 fetch, got %d", calls.Load())
		}
		if len(first) != 2 || len(second) != 2 {
			t.Errorf("unexpected results: %v, %v", first, second)
		}
	})

	t.Run("concurrent_callers_share_one_fetch", func(t *testing.T) {
		c := New()
		var calls atomic.Int32
		release := make(chan struct{})

		fetch := func(context.Context) (int, error) {
			calls.Add(1)
			<-release
			return 42, nil
		}

		const readers = 10
		var started, done sync.WaitGroup
		started.Add(readers)
		done.Add(readers)
		key := Key(KeyTransactions, 7)

		for i := 0; i < readers; i++ {
			go func() {
				defer done.Done()
				started.Done()
				v, err := Fetch(context.Background(), c, key, fetch)
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if v != 42 {
					t.Errorf("expected 42, got %d", v)
				}
			}()
		}

		started.Wait()
		// Give every reader a chance to reach the cache before the
		// in-flight fetch is allowed to complete.
		time.Sleep(10 * time.Millisecond)
		close(release)
		done.Wait()

		if calls.Load() != 1 {
			t.Errorf("expected exactly 1 fetch for %d concurrent readers, got %d", readers, calls.Load())
		}
	})

	t.Run("error_is_not_cached", func(t *testing.T) {
		c := New()
		var calls atomic.Int32
		boom := errors.New("store unavailable")

		fetch := func(context.Context) ([]int, error) {
			if calls.Add(1) == 1 {
				return nil, boom
			}
			return []int{1}, nil
		}

		key := Key(KeyGoals, 3)
		if _, err := Fetch(context.Background(), c, key, fetch); !errors.Is(err, boom) {
			t.Fatalf("expected fetch error, got %v", err)
		}
		if c.Len() != 0 {
			t.Errorf("expected no entries after failed fetch, got %d", c.Len())
		}

		// The next read retries and succeeds.
		v, err := Fetch(context.Background(), c, key, fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(v) != 1 {
			t.Errorf("expected retried result, got %v", v)
		}
	})

	t.Run("failed_key_does_not_disturb_other_keys", func(t *testing.T) {
		c := New()

		goodKey := Key(KeyBusinesses, 1)
		if _, err := Fetch(context.Background(), c, goodKey, func(context.Context) (string, error) {
			return "ok", nil
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		badKey := Key(KeyGoals, 1)
		if _, err := Fetch(context.Background(), c, badKey, func(context.Context) (string, error) {
			return "", errors.New("boom")
		}); err == nil {
			t.Fatal("expected error")
		}

		if v, ok := c.Peek(goodKey); !ok || v.(string) != "ok" {
			t.Errorf("expected healthy key to survive, got %v (ok=%v)", v, ok)
		}
	})

	t.Run("canceled_caller_stops_waiting", func(t *testing.T) {
		c := New()
		release := make(chan struct{})
		defer close(release)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(5 * time.Millisecond)
			cancel()
		}()

		_, err := Fetch(ctx, c, Key(KeySavings, 1), func(context.Context) (int, error) {
			<-release
			return 0, nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestInvalidate(t *testing.T) {
	t.Run("drops_matching_prefix_only", func(t *testing.T) {
		c := New()
		ctx := context.Background()

		seed := func(key string) {
			if _, err := Fetch(ctx, c, key, func(context.Context) (string, error) { return key, nil }); err != nil {
				t.Fatalf("seed %s: %v", key, err)
			}
		}
		seed(Key(KeyPlannerEvents, 1, "2025-01-10"))
		seed(Key(KeyPlannerEvents, 1, "2025-01-11"))
		seed(Key(KeyPlannerEvents, 2, "2025-01-10"))
		seed(Key(KeyGoals, 1))

		c.Invalidate(Key(KeyPlannerEvents, 1))

		if _, ok := c.Peek(Key(KeyPlannerEvents, 1, "2025-01-10")); ok {
			t.Error("expected user 1 day entry to be dropped")
		}
		if _, ok := c.Peek(Key(KeyPlannerEvents, 1, "2025-01-11")); ok {
			t.Error("expected user 1 other day entry to be dropped")
		}
		if _, ok := c.Peek(Key(KeyPlannerEvents, 2, "2025-01-10")); !ok {
			t.Error("expected user 2 entry to survive")
		}
		if _, ok := c.Peek(Key(KeyGoals, 1)); !ok {
			t.Error("expected unrelated entity to survive")
		}
	})

	t.Run("invalidated_key_refetches", func(t *testing.T) {
		c := New()
		ctx := context.Background()
		var calls atomic.Int32

		fetch := func(context.Context) (int, error) {
			return int(calls.Add(1)), nil
		}

		key := Key(KeyTransactions, 1)
		v, _ := Fetch(ctx, c, key, fetch)
		if v != 1 {
			t.Fatalf("expected first fetch, got %d", v)
		}

		c.Invalidate(Key(KeyTransactions, 1))

		v, _ = Fetch(ctx, c, key, fetch)
		if v != 2 {
			t.Errorf("expected refetch after invalidation, got %d", v)
		}
	})
}

func TestInvalidateEntity(t *testing.T) {
	t.Run("planner_mutation_fans_out", func(t *testing.T) {
		c := New()
		ctx := context.Background()

		keys := []string{
			Key(KeyPlannerEvents, 1, "2025-01-10"),
			Key(KeyWeekEvents, 1, "2025-01-06"),
			Key(KeyTodayEvents, 1),
			Key(KeyGoals, 1),
		}
		for _, k := range keys {
			key := k
			if _, err := Fetch(ctx, c, key, func(context.Context) (string, error) { return key, nil }); err != nil {
				t.Fatalf("seed %s: %v", key, err)
			}
		}

		c.InvalidateEntity(TablePlannerEvents, 1)

		for _, k := range keys[:3] {
			if _, ok := c.Peek(k); ok {
				t.Errorf("expected %s to be invalidated", k)
			}
		}
		if _, ok := c.Peek(Key(KeyGoals, 1)); !ok {
			t.Error("expected goals entry to survive a planner mutation")
		}
	})

	t.Run("single_family_entities", func(t *testing.T) {
		got := Dependents(TableTransactions)
		if len(got) != 1 || got[0] != KeyTransactions {
			t.Errorf("unexpected dependents for transactions: %v", got)
		}
	})
}
