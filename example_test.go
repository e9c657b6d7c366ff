package ephemera_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bjaus/ephemera"
)

// stepClock is a manually advanced clock for deterministic examples.
type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func ExampleCache() {
	cache := ephemera.New[int](
		ephemera.WithDefaultTTL[int](5 * time.Minute),
	)

	if err := cache.Set("answer", 42); err != nil {
		fmt.Println(err)
		return
	}

	if v, err := cache.Get("answer"); err == nil {
		fmt.Println(v)
	}
	// Output: 42
}

func ExampleCache_Set_noOverwrite() {
	cache := ephemera.New[string]()

	_ = cache.Set("user", "alice")
	err := cache.Set("user", "bob")
	fmt.Println(errors.Is(err, ephemera.ErrKeyExists))

	v, _ := cache.Get("user")
	fmt.Println(v)

	// Output:
	// true
	// alice
}

func ExampleCache_Sweep() {
	clk := &stepClock{now: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)}
	cache := ephemera.New[string](ephemera.WithClock[string](clk))

	_ = cache.SetWithTTL("short", "a", time.Second)
	_ = cache.SetWithTTL("long", "b", time.Minute)

	clk.now = clk.now.Add(2 * time.Second)
	fmt.Println("swept:", cache.Sweep())
	fmt.Println("left:", cache.Len())

	_, err := cache.Get("short")
	fmt.Println(err)

	// Output:
	// swept: 1
	// left: 1
	// ephemera: not found
}

func ExampleCache_Start() {
	cache := ephemera.New[string](
		ephemera.WithSweepInterval[string](10*time.Millisecond),
		ephemera.WithGranularity[string](0),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := cache.Start(ctx); err != nil {
		fmt.Println(err)
		return
	}

	_ = cache.SetWithTTL("token", "xyz", 20*time.Millisecond)
	for cache.Len() > 0 {
		time.Sleep(5 * time.Millisecond)
	}
	fmt.Println("evicted")

	cache.Close()
	fmt.Println(cache.SweeperState())

	// Output:
	// evicted
	// stopped
}

func ExampleOnExpire() {
	clk := &stepClock{now: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)}
	cache := ephemera.New[int](
		ephemera.WithClock[int](clk),
		ephemera.OnExpire(func(key string, value int) {
			fmt.Printf("expired: %s=%d\n", key, value)
		}),
	)

	_ = cache.SetWithTTL("b", 2, 2*time.Second)
	_ = cache.SetWithTTL("a", 1, time.Second)

	clk.now = clk.now.Add(time.Minute)
	cache.Sweep()

	// Output:
	// expired: a=1
	// expired: b=2
}

func ExampleCache_Stats() {
	cache := ephemera.New[int]()

	_ = cache.Set("a", 1)
	_, _ = cache.Get("a") // hit
	_, _ = cache.Get("b") // miss

	stats := cache.Stats()
	fmt.Printf("hits: %d, misses: %d, rate: %.0f%%\n",
		stats.Hits, stats.Misses, stats.HitRate()*100)

	// Output: hits: 1, misses: 1, rate: 50%
}
