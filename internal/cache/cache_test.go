package cache

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}
	if _, ok := c.Get("z"); ok {
		t.Error("Get(z) should miss")
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](3)
	for i := range 3 {
		c.Set(i, i)
	}
	c.Get(0) // 1 is now the oldest
	c.Set(3, 3)

	if _, ok := c.Get(1); ok {
		t.Error("entry 1 should have been evicted")
	}
	for _, k := range []int{0, 2, 3} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("entry %d missing", k)
		}
	}
	if s := c.Stats(); s.Len != 3 || s.Evictions != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestCache_SetExistingUpdates(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("a", 5)
	if c.Len() != 1 {
		t.Fatalf("Len() = %d", c.Len())
	}
	if v, _ := c.Get("a"); v != 5 {
		t.Errorf("Get(a) = %d", v)
	}
}

func TestCache_Disabled(t *testing.T) {
	c := New[int, int](0)
	c.Set(1, 1)
	if c.Len() != 0 {
		t.Error("zero-limit cache should not store")
	}
	if _, ok := c.Get(1); ok {
		t.Error("zero-limit cache should always miss")
	}
}

func TestCache_ConcurrentGetSet(t *testing.T) {
	c := New[int, int](16)
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := c.Get(i % 4); !ok {
				c.Set(i%4, (i%4)*(i%4))
			}
		}()
	}
	wg.Wait()
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}
	s := c.Stats()
	if s.Hits+s.Misses != 32 {
		t.Errorf("Stats() = %+v, want 32 lookups", s)
	}
	if v, _ := c.Get(3); v != 9 {
		t.Errorf("Get(3) = %d, want 9", v)
	}
}

func TestStats_HitRate(t *testing.T) {
	c := New[int, int](4)
	c.Set(1, 1)
	c.Get(1)
	c.Get(1)
	c.Get(1)
	c.Get(2)
	if r := c.Stats().HitRate(); r != 0.75 {
		t.Errorf("HitRate() = %v, want 0.75", r)
	}
}

func TestCache_Clear(t *testing.T) {
	c := New[int, int](4)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Clear()
	if c.Len() != 0 {
		t.Fatal("Clear() left entries")
	}
	c.Set(3, 3)
	if v, ok := c.Get(3); !ok || v != 3 {
		t.Error("cache unusable after Clear()")
	}
}

func TestShared_BuildsOnce(t *testing.T) {
	var s Shared[*int]
	if s.Built() {
		t.Fatal("fresh Shared should not be built")
	}
	if _, ok := s.Peek(); ok {
		t.Fatal("Peek() before build should report false")
	}

	var calls atomic.Int32
	var wg sync.WaitGroup
	results := make([]*int, 64)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.Get(func() *int {
				calls.Add(1)
				v := 42
				return &v
			})
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("build ran %d times", calls.Load())
	}
	for i, r := range results {
		if r != results[0] {
			t.Fatalf("goroutine %d saw a different value", i)
		}
	}
	if v, ok := s.Peek(); !ok || *v != 42 {
		t.Error("Peek() after build")
	}
}
