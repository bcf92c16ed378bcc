// Package scheduler implements the worker pool that executes test runs.
//
// The scheduler manages a fixed pool of workers. Jobs are submitted with Submit
// (or AddWork for anonymous jobs) and return a Future that delivers exactly one
// Result. With a pool of one worker runs are strictly sequential, which is what
// the subprocess runner relies on by default.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                         Scheduler                           │
//	│                                                             │
//	│   ┌──────────┐     ┌──────────┐     ┌──────────┐            │
//	│   │ Worker 1 │     │ Worker 2 │     │ Worker N │            │
//	│   └────▲─────┘     └────▲─────┘     └────▲─────┘            │
//	│        └────────────────┼────────────────┘                  │
//	│                    dispatch()                               │
//	│                         │                                   │
//	│   ┌─────────────────────┴─────────────────────────┐         │
//	│   │ Pending jobs (FIFO)  [run-1] [run-2] ...      │         │
//	│   └───────────────────────────────────────────────┘         │
//	│                         ▲                                   │
//	│                  Submit(name, fn)                           │
//	└─────────────────────────────────────────────────────────────┘
//
// # Futures
//
//	future := sched.Submit("account/api", func(ctx context.Context) (any, error) {
//	    return runSubprocess(ctx)
//	})
//
//	// block with a caller context; cancellation stops the job
//	data, err := scheduler.Wait(ctx, future)
//
// Every job runs with a context derived from the scheduler's main context, so
// future.Stop() cancels one job and Close() cancels all of them.
//
// # Panics
//
// A panicking job is logged and reported to its future as an error; the worker
// returns to the pool.
//
// # Shutdown
//
// Close cancels the main context, resolves every queued job with context.Canceled,
// waits for in-flight jobs and stops the event loop. It is idempotent. A job stopped
// while still queued is resolved at once and never reaches a worker. Submit after Close returns a future already holding
// context.Canceled.
package scheduler
