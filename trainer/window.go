package trainer

// Window keeps the most recent values pushed to it, up to its capacity.
type Window struct {
	values []float64
	next   int
	full   bool
}

// NewWindow makes a window holding up to capacity values. Capacity below one is treated as one.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{values: make([]float64, capacity)}
}

// Push adds v, evicting the oldest value when the window is full.
func (w *Window) Push(v float64) {
	w.values[w.next] = v
	w.next++
	if w.next == len(w.values) {
		w.next = 0
		w.full = true
	}
}

// Len is the number of values held.
func (w *Window) Len() int {
	if w.full {
		return len(w.values)
	}
	return w.next
}

// Mean averages the held values. An empty window has mean 0.
func (w *Window) Mean() float64 {
	n := w.Len()
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range w.values[:n] {
		sum += v
	}
	return sum / float64(n)
}
