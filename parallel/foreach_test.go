package parallel

import "sync/atomic"
import "testing"

func TestForEachVisitsEveryIndexOnce(t *testing.T) {
	const n = 1000
	var seen [n]int32
	ForEach(n, 7, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	for i, v := range seen {
		if v != 1 {
			t.Fatalf("index %d visited %d times", i, v)
		}
	}
}

func TestForEachBoundsConcurrency(t *testing.T) {
	var running, peak int32
	ForEach(200, 3, func(i int) {
		cur := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		atomic.AddInt32(&running, -1)
	})
	if peak > 3 {
		t.Errorf("peak concurrency %d exceeds limit 3", peak)
	}
}

func TestForEachEmpty(t *testing.T) {
	ForEach(0, 4, func(i int) {
		t.Fatal("body must not be called")
	})
}

func TestThreads(t *testing.T) {
	if Threads() < 1 {
		t.Fatal("Threads must be positive")
	}
	if Describe() == "" {
		t.Fatal("Describe must not be empty")
	}
}
