package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/bucketlist/internal/logging"
	"github.com/dmitrijs2005/bucketlist/internal/models"
)

// DefaultWriteTimeout bounds a single background write.
const DefaultWriteTimeout = 5 * time.Second

// SaveFunc persists a full snapshot. (*Gateway).Save satisfies it.
type SaveFunc func(ctx context.Context, list []models.Destination) error

// Saver writes scheduled snapshots in the background.
type Saver struct {
	save         SaveFunc
	delay        time.Duration
	writeTimeout time.Duration
	log          logging.Logger

	mu      sync.Mutex
	latest  []models.Destination
	dirty   bool
	onError func(error)

	// held for the whole snapshot-take-and-write so writes land in schedule order
	writeMu sync.Mutex

	wake      chan struct{}
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewSaver starts a background writer. Scheduled snapshots are written delay
// after the first schedule of a burst; a zero delay writes as soon as the
// loop wakes.
func NewSaver(save SaveFunc, delay time.Duration, log logging.Logger) *Saver {
	if log == nil {
		log = logging.Discard()
	}
	s := &Saver{
		save:         save,
		delay:        delay,
		writeTimeout: DefaultWriteTimeout,
		log:          log,
		wake:         make(chan struct{}, 1),
		done:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}
	go s.loop()
	return s
}

// SetErrorHandler registers fn to receive every failed write.
func (s *Saver) SetErrorHandler(fn func(error)) {
	s.mu.Lock()
	s.onError = fn
	s.mu.Unlock()
}

// Schedule records list as the snapshot to write next.
func (s *Saver) Schedule(list []models.Destination) {
	s.mu.Lock()
	s.latest = models.Clone(list)
	s.dirty = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Pending reports whether a scheduled snapshot has not been written yet.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Flush writes the pending snapshot now. It is a no-op when nothing is
// pending. A failed snapshot stays pending unless a newer one was scheduled
// meanwhile.
func (s *Saver) Flush(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.latest
	s.dirty = false
	s.mu.Unlock()

	if err := s.save(ctx, snapshot); err != nil {
		s.log.Warn(ctx, "failed to save destinations", "count", len(snapshot), "error", err)

		s.mu.Lock()
		if !s.dirty {
			s.latest = snapshot
			s.dirty = true
		}
		onError := s.onError
		s.mu.Unlock()

		if onError != nil {
			onError(err)
		}
		return err
	}
	return nil
}

// Close stops the background loop and flushes what is still pending.
// Safe to call more than once.
func (s *Saver) Close(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.done) })

	select {
	case <-s.stopped:
	case <-ctx.Done():
		return ctx.Err()
	}

	return s.Flush(ctx)
}

func (s *Saver) loop() {
	defer close(s.stopped)

	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		if s.delay > 0 {
			timer := time.NewTimer(s.delay)
			select {
			case <-s.done:
				timer.Stop()
				return
			case <-timer.C:
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		_ = s.Flush(ctx)
		cancel()
	}
}
