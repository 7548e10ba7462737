package query

import "context"

// Fetcher loads the data for one key.
type Fetcher[K comparable, T any] func(ctx context.Context, key K) (T, error)

// Resolution is what a Task reports. Gen identifies the execution that
// produced it.
type Resolution[K comparable, T any] struct {
	Gen  uint64
	Key  K
	Data T
	Err  error
}

// Task performs one fetch. It is safe to run on any goroutine.
type Task[K comparable, T any] func() Resolution[K, T]

// Query tracks the latest execution for a key and the result it produced.
type Query[K comparable, T any] struct {
	fetch  Fetcher[K, T]
	skip   func(K) bool
	gen    uint64
	key    K
	active bool
	cancel context.CancelFunc
	result Result[T]
}

// New builds a query. skip may be nil; when it reports true for a key the
// query does not execute and stays Idle.
func New[K comparable, T any](fetch Fetcher[K, T], skip func(K) bool) *Query[K, T] {
	return &Query[K, T]{fetch: fetch, skip: skip}
}

// Execute points the query at key. It returns nil when nothing has to run:
// the key is skipped, or the same key is already pending or resolved.
// Any other execution in flight is cancelled and its resolution will be ignored.
func (q *Query[K, T]) Execute(ctx context.Context, key K) Task[K, T] {
	if q.active && key == q.key {
		switch q.result.Status {
		case Pending, Ok:
			return nil
		case Idle:
			if q.skipped(key) {
				return nil
			}
		}
	}
	return q.start(ctx, key)
}

// Refetch runs the current key again even if it already resolved.
func (q *Query[K, T]) Refetch(ctx context.Context) Task[K, T] {
	if !q.active {
		return nil
	}
	return q.start(ctx, q.key)
}

func (q *Query[K, T]) start(ctx context.Context, key K) Task[K, T] {
	q.abort()
	q.gen++
	q.key = key
	q.active = true
	if q.skipped(key) {
		q.result = Result[T]{Status: Idle}
		return nil
	}

	taskCtx, cancel := context.WithCancel(ctx)
	q.cancel = cancel
	q.result = Result[T]{Status: Pending}

	gen, fetch := q.gen, q.fetch
	return func() Resolution[K, T] {
		defer cancel()
		data, err := fetch(taskCtx, key)
		return Resolution[K, T]{Gen: gen, Key: key, Data: data, Err: err}
	}
}

// Resolve applies a resolution if it belongs to the current generation and
// reports whether it did.
func (q *Query[K, T]) Resolve(r Resolution[K, T]) bool {
	if r.Gen != q.gen || q.result.Status != Pending {
		return false
	}
	q.cancel = nil
	if r.Err != nil {
		q.result = Result[T]{Status: Failed, Err: r.Err}
		return true
	}
	q.result = Result[T]{Status: Ok, Data: r.Data}
	return true
}

// Cancel aborts the execution in flight, if any. A pending query goes back to Idle.
func (q *Query[K, T]) Cancel() {
	q.abort()
	q.gen++
	if q.result.Status == Pending {
		q.result = Result[T]{Status: Idle}
	}
}

// Run executes key and waits for it on the calling goroutine.
func (q *Query[K, T]) Run(ctx context.Context, key K) Result[T] {
	if task := q.Execute(ctx, key); task != nil {
		q.Resolve(task())
	}
	return q.result
}

func (q *Query[K, T]) Result() Result[T] { return q.result }

// Key returns the key of the latest execution.
func (q *Query[K, T]) Key() (K, bool) { return q.key, q.active }

func (q *Query[K, T]) Generation() uint64 { return q.gen }

func (q *Query[K, T]) skipped(key K) bool {
	return q.skip != nil && q.skip(key)
}

func (q *Query[K, T]) abort() {
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
}
