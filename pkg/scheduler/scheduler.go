package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

type queue[T any] []T

func (q *queue[T]) Len() int { return len(*q) }

func (q *queue[T]) Pop() T {
	old := *q
	x := old[0]
	*q = old[1:]
	return x
}

func (q *queue[T]) Push(t T) {
	*q = append(*q, t)
}

type job struct {
	name string
	fn   Work[any]
	c    chan Result[any]
	ctx  context.Context
	stop func() bool
}

// drop resolves a job that will never run.
func (j job) drop(err error) {
	j.stop()
	j.c <- Result[any]{Err: err}
}

type worker struct {
	done chan any
	wg   *sync.WaitGroup
}

func (w worker) run(j job) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.S().Named("scheduler").Errorw("job panicked", "job", j.name, "panic", rec)
			j.c <- Result[any]{Err: fmt.Errorf("job %s panicked: %v", j.name, rec)}
		}
		w.done <- struct{}{}
		w.wg.Done()
	}()

	v, err := j.fn(j.ctx)
	j.c <- Result[any]{Data: v, Err: err}
}

// Scheduler runs jobs on a fixed pool of workers. Jobs beyond the pool size wait in FIFO order.
type Scheduler struct {
	workers    *queue[worker]
	pending    *queue[job]
	nPending   atomic.Int64
	close      chan any
	done       chan any
	stopped    chan any
	sweep      chan any
	submit     chan job
	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewScheduler(nbWorkers int) *Scheduler {
	if nbWorkers < 1 {
		nbWorkers = 1
	}
	done := make(chan any, nbWorkers)
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		workers:    &queue[worker]{},
		pending:    &queue[job]{},
		close:      make(chan any),
		done:       done,
		stopped:    make(chan any),
		sweep:      make(chan any, 1),
		submit:     make(chan job),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	for range nbWorkers {
		s.workers.Push(worker{done: done, wg: &s.wg})
	}
	go s.loop()
	return s
}

// AddWork submits an anonymous job.
func (s *Scheduler) AddWork(w Work[any]) *Future[Result[any]] {
	return s.Submit("", w)
}

// Submit queues a named job and returns immediately. The name is only used for logging.
func (s *Scheduler) Submit(name string, w Work[any]) *Future[Result[any]] {
	c := make(chan Result[any], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)

	// a queued job whose context ends is swept out of the queue without waiting for a worker
	stop := context.AfterFunc(ctx, func() {
		select {
		case s.sweep <- struct{}{}:
		default:
		}
	})

	s.nPending.Add(1)
	select {
	case <-s.mainCtx.Done():
		s.nPending.Add(-1)
		stop()
		c <- Result[any]{Err: context.Canceled}
	case s.submit <- job{name: name, fn: w, c: c, ctx: ctx, stop: stop}:
	}

	return NewFuture(c, cancel)
}

// Pending returns the number of jobs submitted but not yet started.
func (s *Scheduler) Pending() int {
	return int(s.nPending.Load())
}

func (s *Scheduler) Close() {
	s.once.Do(func() {
		s.mainCancel()
		s.close <- struct{}{}
		<-s.stopped
	})
}

func (s *Scheduler) loop() {
	defer close(s.stopped)
	for {
		select {
		case j := <-s.submit:
			s.pending.Push(j)
			s.dispatch()
		case <-s.done:
			s.workers.Push(worker{done: s.done, wg: &s.wg})
			s.dispatch()
		case <-s.sweep:
			s.dropCancelled()
		case <-s.close:
			for s.pending.Len() > 0 {
				s.nPending.Add(-1)
				s.pending.Pop().drop(context.Canceled)
			}
			s.wg.Wait()
			return
		}
	}
}

// dispatch pairs idle workers with pending jobs until one side runs out.
// Jobs cancelled while queued are resolved without taking a worker.
func (s *Scheduler) dispatch() {
	for s.workers.Len() > 0 && s.pending.Len() > 0 {
		j := s.pending.Pop()
		s.nPending.Add(-1)
		if err := j.ctx.Err(); err != nil {
			j.drop(err)
			continue
		}
		j.stop()
		w := s.workers.Pop()
		s.wg.Add(1)
		go w.run(j)
	}
}

func (s *Scheduler) dropCancelled() {
	kept := (*s.pending)[:0]
	for _, j := range *s.pending {
		if err := j.ctx.Err(); err != nil {
			s.nPending.Add(-1)
			j.drop(err)
			continue
		}
		kept = append(kept, j)
	}
	*s.pending = kept
}
