package cache

// Ring is a fixed-capacity buffer; pushing into a full ring evicts the oldest item.
// It is not safe for concurrent use.
type Ring[T any] struct {
	items []T
	head  int // next write position
	size  int
}

// NewRing returns an empty ring holding at most capacity items. Capacity below 1 is raised to 1.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{items: make([]T, capacity)}
}

func (r *Ring[T]) Cap() int { return len(r.items) }

func (r *Ring[T]) Len() int { return r.size }

// Push stores v as the newest item.
func (r *Ring[T]) Push(v T) {
	r.items[r.head] = v
	r.head = (r.head + 1) % len(r.items)
	if r.size < len(r.items) {
		r.size++
	}
}

// Newest returns the most recently pushed item.
func (r *Ring[T]) Newest() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	return r.items[r.index(0)], true
}

// PopNewest removes and returns the most recently pushed item.
func (r *Ring[T]) PopNewest() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	i := r.index(0)
	v := r.items[i]
	r.items[i] = zero
	r.head = i
	r.size--
	return v, true
}

// Items returns a newest-first copy of the held items.
func (r *Ring[T]) Items() []T {
	out := make([]T, r.size)
	for n := 0; n < r.size; n++ {
		out[n] = r.items[r.index(n)]
	}
	return out
}

// Reset drops every item.
func (r *Ring[T]) Reset() {
	var zero T
	for i := range r.items {
		r.items[i] = zero
	}
	r.head, r.size = 0, 0
}

// index maps the n-th newest item to its slot.
func (r *Ring[T]) index(n int) int {
	return (r.head - 1 - n + 2*len(r.items)) % len(r.items)
}
