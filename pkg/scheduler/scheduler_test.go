package scheduler_test

import (
	"context"
	"errors"
	"runtime"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/eventsqa/harness/pkg/scheduler"
)

var _ = Describe("Scheduler", func() {
	var s *scheduler.Scheduler

	AfterEach(func() {
		if s != nil {
			s.Close()
		}
	})

	Describe("Submit", func() {
		It("should run a named job and deliver its result", func() {
			s = scheduler.NewScheduler(1)

			future := s.Submit("account/api", func(ctx context.Context) (any, error) {
				return "done", nil
			})
			Expect(future).NotTo(BeNil())

			var result scheduler.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Err).NotTo(HaveOccurred())
			Expect(result.Data).To(Equal("done"))
		})

		It("should report job errors through the future", func() {
			s = scheduler.NewScheduler(1)

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return nil, errors.New("exit status 1")
			})

			var result scheduler.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError("exit status 1"))
		})

		It("should execute multiple jobs", func() {
			s = scheduler.NewScheduler(2)

			results := make(chan int, 3)
			for i := range 3 {
				idx := i
				s.AddWork(func(ctx context.Context) (any, error) {
					results <- idx
					return idx, nil
				})
			}

			Eventually(func() int {
				return len(results)
			}, 2*time.Second, 100*time.Millisecond).Should(Equal(3))
		})

		// Given a pool with one worker
		// When two jobs are submitted
		// Then the second one starts only after the first has finished
		It("should run jobs sequentially with a single worker", func() {
			s = scheduler.NewScheduler(1)

			unblock := make(chan struct{})
			order := make(chan string, 2)

			s.Submit("first", func(ctx context.Context) (any, error) {
				<-unblock
				order <- "first"
				return nil, nil
			})
			second := s.Submit("second", func(ctx context.Context) (any, error) {
				order <- "second"
				return nil, nil
			})

			Eventually(s.Pending, time.Second).Should(Equal(1))
			Consistently(order, 200*time.Millisecond).ShouldNot(Receive())

			close(unblock)
			Eventually(second.C(), 2*time.Second).Should(Receive())
			Expect(<-order).To(Equal("first"))
			Expect(<-order).To(Equal("second"))
			Expect(s.Pending()).To(Equal(0))
		})
	})

	Describe("Wait", func() {
		It("should return the job data", func() {
			s = scheduler.NewScheduler(1)

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return 42, nil
			})

			data, err := scheduler.Wait(context.Background(), future)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal(42))
		})

		It("should stop the job when the caller context is cancelled", func() {
			s = scheduler.NewScheduler(1)

			future := s.AddWork(func(ctx context.Context) (any, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			})

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			_, err := scheduler.Wait(ctx, future)
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	// Given one worker busy with a long run
	// When a queued job's caller gives up
	// Then Wait returns at once and the job never runs
	Describe("Queued cancellation", func() {
		It("should resolve a cancelled queued job without waiting for a worker", func() {
			s = scheduler.NewScheduler(1)

			unblock := make(chan struct{})
			defer close(unblock)
			s.Submit("long", func(ctx context.Context) (any, error) {
				<-unblock
				return nil, nil
			})

			ran := make(chan struct{}, 1)
			queued := s.Submit("queued", func(ctx context.Context) (any, error) {
				ran <- struct{}{}
				return nil, nil
			})
			Eventually(s.Pending, time.Second).Should(Equal(1))

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			start := time.Now()
			_, err := scheduler.Wait(ctx, queued)

			Expect(err).To(MatchError(context.Canceled))
			Expect(time.Since(start)).To(BeNumerically("<", time.Second))
			Eventually(s.Pending, time.Second).Should(Equal(0))
			Consistently(ran, 200*time.Millisecond).ShouldNot(Receive())
		})

		It("should resolve queued jobs when the scheduler is closed", func() {
			s = scheduler.NewScheduler(1)

			s.AddWork(func(ctx context.Context) (any, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			})
			queued := s.AddWork(func(ctx context.Context) (any, error) {
				return "ran", nil
			})
			Eventually(s.Pending, time.Second).Should(Equal(1))

			s.Close()
			s = nil // prevent AfterEach from closing again

			var result scheduler.Result[any]
			Eventually(queued.C(), time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
			Expect(result.Data).To(BeNil())
		})
	})

	Describe("Cancel work", func() {
		It("should cancel work via future.Stop()", func() {
			s = scheduler.NewScheduler(1)

			cancelled := make(chan bool, 1)
			future := s.AddWork(func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			})

			time.Sleep(100 * time.Millisecond)
			future.Stop()

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		It("should cancel work when scheduler is closed", func() {
			s = scheduler.NewScheduler(1)

			cancelled := make(chan bool, 1)
			s.AddWork(func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			})

			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})
	})

	Describe("Panic recovery", func() {
		It("should turn a panic into an error and keep the worker", func() {
			s = scheduler.NewScheduler(1)

			future := s.Submit("boom", func(ctx context.Context) (any, error) {
				panic("boom")
			})

			var result scheduler.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(ContainSubstring("job boom panicked")))

			next := s.AddWork(func(ctx context.Context) (any, error) {
				return "alive", nil
			})
			Eventually(next.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("alive"))
		})
	})

	Describe("Goroutine cleanup", func() {
		It("should not leak goroutines after Close under load", func() {
			base := runtime.NumGoroutine()
			s = scheduler.NewScheduler(4)

			work := func(ctx context.Context) (any, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}

			for i := 0; i < 200; i++ {
				s.AddWork(work)
			}

			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(func() int {
				return runtime.NumGoroutine()
			}, 5*time.Second, 100*time.Millisecond).Should(BeNumerically("<=", base+10))
		})
	})

	Describe("Close behavior", func() {
		It("should return canceled when AddWork is called after Close", func() {
			s = scheduler.NewScheduler(1)
			s.Close()

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return "done", nil
			})

			var result scheduler.Result[any]
			Eventually(future.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		It("should wait for in-flight work to finish on Close", func() {
			s = scheduler.NewScheduler(1)

			started := make(chan struct{})
			unblock := make(chan struct{})
			s.AddWork(func(ctx context.Context) (any, error) {
				close(started)
				<-unblock
				return "done", nil
			})
			Eventually(started, 1*time.Second).Should(BeClosed())

			closeDone := make(chan struct{})
			go func() {
				s.Close()
				close(closeDone)
			}()

			Consistently(closeDone, 200*time.Millisecond).ShouldNot(BeClosed())
			close(unblock)
			Eventually(closeDone, 1*time.Second).Should(BeClosed())
			s = nil // prevent AfterEach from closing again
		})
	})
})
