package overlay

import "context"

// Loop is a Dispatcher that runs posted functions one at a time on the
// goroutine calling Run.
type Loop struct {
	queue chan func()
	done  chan struct{}
}

// NewLoop returns a loop that buffers up to size posted functions.
func NewLoop(size int) *Loop {
	if size < 1 {
		size = 64
	}
	return &Loop{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Post queues fn. It is dropped once Run has returned.
func (l *Loop) Post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// Run executes posted functions until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}
