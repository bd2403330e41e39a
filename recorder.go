package streamassert

import (
	"fmt"
	"sync"
	"time"
)

// Clock reports the current virtual time. It is implemented by the test
// scheduler driving the stream; the recorder only reads it.
type Clock interface {
	Now() Tick
}

// ClockFunc adapts a plain function to a Clock.
type ClockFunc func() Tick

func (f ClockFunc) Now() Tick { return f() }

// Notification is a single delivery on a channel passed to
// [Recorder.Listen]. A non-nil Err terminates the stream with an error.
type Notification[T any] struct {
	Value T
	Err   error
}

// Recorder observes a stream and stamps every notification with the
// current virtual time of its clock, producing a Log that satisfies the
// recording contract. Notifications which would break the contract are
// rejected with an error and not recorded.
//
// A Recorder is safe for concurrent use.
type Recorder[T any] struct {
	mu         sync.Mutex
	clock      Clock
	events     Log[T]
	terminated bool
	listenErr  error

	wg        *sync.WaitGroup
	closeChan chan struct{}
}

func NewRecorder[T any](clock Clock) *Recorder[T] {
	return &Recorder[T]{
		clock:     clock,
		events:    make(Log[T], 0),
		wg:        &sync.WaitGroup{},
		closeChan: make(chan struct{}, 1),
	}
}

func (rec *Recorder[T]) OnNext(value T) error {
	return rec.record(Next(rec.clock.Now(), value))
}

func (rec *Recorder[T]) OnError(err error) error {
	return rec.record(Error[T](rec.clock.Now(), err))
}

func (rec *Recorder[T]) OnCompleted() error {
	return rec.record(Completed[T](rec.clock.Now()))
}

func (rec *Recorder[T]) record(event RecordedEvent[T]) error {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	idx := len(rec.events)
	switch {
	case rec.terminated:
		return ContractError{Index: idx, Event: event.String(), Err: ErrAfterTerminal}
	case event.Time < 0:
		return ContractError{Index: idx, Event: event.String(), Err: ErrNegativeTime}
	case idx > 0 && event.Time < rec.events[idx-1].Time:
		return ContractError{Index: idx, Event: event.String(), Err: ErrTimeRegressed}
	}

	rec.events = append(rec.events, event)
	rec.terminated = event.IsTerminal()
	return nil
}

// Events returns a snapshot of the events recorded so far.
func (rec *Recorder[T]) Events() Log[T] {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	out := make(Log[T], len(rec.events))
	copy(out, rec.events)
	return out
}

// Terminated returns true once an error or completion has been recorded.
func (rec *Recorder[T]) Terminated() bool {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	return rec.terminated
}

// Listen starts recording by launching a goroutine which reads
// notifications from the channel provided, inside of a loop. If the
// channel closes, a completion is recorded and the loop ends. A
// notification carrying an error is recorded as an error event, which
// also ends the loop.
//
// If a notification cannot be recorded because it breaks the recording
// contract, the loop ends and the error is returned by Await.
//
// The recorder tracks this goroutine using a WaitGroup, which is used by
// Await to ensure the read-loop has finished.
func (rec *Recorder[T]) Listen(channel <-chan Notification[T]) {
	rec.wg.Add(1)
	go func() {
		defer rec.wg.Done()
		for {
			select {
			case <-rec.closeChan:
				return
			case notification, ok := <-channel:
				var err error
				switch {
				case !ok:
					// channel closed
					err = rec.OnCompleted()
				case notification.Err != nil:
					err = rec.OnError(notification.Err)
				default:
					err = rec.OnNext(notification.Value)
				}

				if err != nil {
					rec.setListenErr(err)
					return
				}

				if !ok || notification.Err != nil {
					return
				}
			}
		}
	}()
}

func (rec *Recorder[T]) setListenErr(err error) {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.listenErr == nil {
		rec.listenErr = err
	}
}

func (rec *Recorder[T]) listenError() error {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.listenErr != nil {
		return fmt.Errorf("recorder listener stopped: %w", rec.listenErr)
	}

	return nil
}

// Await waits (up to the timeout) for the listener started by Listen to
// finish. If it does not finish in time it is forcibly stopped, no terminal
// event is recorded, and an error is returned. If the listener stopped
// because a notification broke the recording contract, that error is
// returned instead.
func (rec *Recorder[T]) Await(timeout time.Duration) error {
	finished := make(chan struct{}, 1)
	go func() {
		rec.wg.Wait()
		finished <- struct{}{}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		rec.closeChan <- struct{}{}
		<-finished

		select {
		case <-rec.closeChan:
			// Nothing consumed the stop signal, so every listener had
			// already finished on its own.
		default:
			return fmt.Errorf("recorder did not finish within the %s timeout specified", timeout)
		}
	case <-finished:
	}

	return rec.listenError()
}
