package ephemera

import (
	"strconv"
	"testing"
	"time"
)

func BenchmarkCache_Get(b *testing.B) {
	cache := New[int]()

	keys := make([]string, 100)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
		cache.Set(keys[i], i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(keys[i%100])
	}
}

func BenchmarkCache_Set(b *testing.B) {
	cache := New[int]()

	keys := make([]string, b.N)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Set(keys[i], i)
	}
}

func BenchmarkCache_SetSpread(b *testing.B) {
	cache := New[int](WithGranularity[int](0))

	keys := make([]string, b.N)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// one bucket per key
		cache.SetWithTTL(keys[i], i, time.Minute+time.Duration(i))
	}
}

func BenchmarkCache_Parallel(b *testing.B) {
	cache := New[int]()

	keys := make([]string, 100)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
		cache.Set(keys[i], i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			cache.Get(keys[i%100])
			i++
		}
	})
}

func BenchmarkCache_Sweep(b *testing.B) {
	buckets := []int{1, 10, 1000}

	for _, n := range buckets {
		b.Run(strconv.Itoa(n)+"_buckets", func(b *testing.B) {
			const perRun = 10_000
			clk := &mockClock{now: epoch}
			cache := New[int](WithClock[int](clk))

			for i := 0; i < b.N; i++ {
				b.StopTimer()
				for k := range perRun {
					ttl := time.Duration(k%n+1) * time.Second
					cache.SetWithTTL(strconv.Itoa(i)+"-"+strconv.Itoa(k), k, ttl)
				}
				clk.Advance(time.Duration(n) * time.Second)
				b.StartTimer()

				cache.Sweep()
			}
		})
	}
}
