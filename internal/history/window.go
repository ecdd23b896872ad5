package history

// Window is a fixed-capacity circular buffer.
type Window[T any] struct {
	data  []T
	head  int
	count int
}

// NewWindow creates a window with the given capacity.
func NewWindow[T any](capacity int) *Window[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Window[T]{data: make([]T, capacity)}
}

// Push adds a value, overwriting the oldest if full.
func (w *Window[T]) Push(v T) {
	w.data[w.head] = v
	w.head = (w.head + 1) % len(w.data)
	if w.count < len(w.data) {
		w.count++
	}
}

func (w *Window[T]) Len() int { return w.count }

// Values returns the retained values oldest first.
func (w *Window[T]) Values() []T {
	if w.count == 0 {
		return nil
	}
	result := make([]T, w.count)
	start := w.head - w.count
	if start < 0 {
		start += len(w.data)
	}
	for i := 0; i < w.count; i++ {
		result[i] = w.data[(start+i)%len(w.data)]
	}
	return result
}

// Average returns the mean of values, or 0 for none.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
