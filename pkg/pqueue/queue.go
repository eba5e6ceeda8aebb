// Package pqueue implements a bounded priority list kept in ascending order.
package pqueue

func WithCap(size uint) Option {
	return func(o *options) {
		o.cap = int(size)
	}
}

type Option func(*options)

type options struct {
	cap int
}

type item[T any] struct {
	value T
	prior float64
}

// New returns an unbounded queue unless WithCap is given.
func New[T any](opts ...Option) *Queue[T] {
	o := options{cap: -1}
	for _, opt := range opts {
		opt(&o)
	}
	return &Queue[T]{cap: o.cap}
}

// Queue keeps items sorted ascending by priority. Items with equal priority
// stay in insertion order.
type Queue[T any] struct {
	cap   int
	items []item[T]
}

// Push inserts val before the first item with a strictly greater priority and
// drops the tail once the queue grows past its capacity.
func (q *Queue[T]) Push(val T, priority float64) {
	if q.cap == 0 {
		return
	}
	pos := len(q.items)
	for i := range q.items {
		if priority < q.items[i].prior {
			pos = i
			break
		}
	}
	if q.cap > 0 && pos >= q.cap {
		return
	}
	q.items = append(q.items, item[T]{})
	copy(q.items[pos+1:], q.items[pos:])
	q.items[pos] = item[T]{value: val, prior: priority}
	if q.cap > 0 && len(q.items) > q.cap {
		q.items = q.items[:q.cap]
	}
}

func (q *Queue[T]) PopAll() []T {
	pulled := make([]T, len(q.items))
	for i := range q.items {
		pulled[i] = q.items[i].value
	}
	q.items = q.items[:0]
	return pulled
}

func (q *Queue[T]) Len() int { return len(q.items) }
