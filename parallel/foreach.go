// Package parallel runs independent per-sample work on a bounded number of goroutines.
package parallel

import "sync"

// ForEach calls body for every i in [0, length) using at most limit goroutines at once.
// Each body call must write only to its own slot of any shared output.
func ForEach(length, limit int, body func(i int)) {
	if limit <= 0 {
		limit = 1
	}
	if length <= 0 {
		return
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	wg.Add(length)

	for i := range length {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			body(i)
		}(i)
	}

	wg.Wait()
}
