package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/bucketlist/internal/logging"
	"github.com/dmitrijs2005/bucketlist/internal/models"
	"github.com/dmitrijs2005/bucketlist/internal/persistence"
)

var (
	ErrNotInitialized = errors.New("store not initialized")
	ErrClosed         = errors.New("store closed")
	ErrIDExhausted    = errors.New("could not generate a unique id")
)

// maxIDAttempts bounds re-rolls when a generated id is already taken.
const maxIDAttempts = 32

// Gateway loads and saves the full list. *persistence.Gateway implements it.
type Gateway interface {
	Load(ctx context.Context) ([]models.Destination, error)
	Save(ctx context.Context, list []models.Destination) error
}

type state int

const (
	stateNew state = iota
	stateReady
	stateClosed
)

type Store struct {
	gateway   Gateway
	log       logging.Logger
	newID     func() string
	saveDelay time.Duration

	initMu sync.Mutex

	mu        sync.Mutex
	state     state
	items     []models.Destination
	saver     *persistence.Saver
	listeners map[int]func([]models.Destination)
	errFns    map[int]func(error)
	nextSubID int
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithSaveDelay sets how long the background saver waits to coalesce a burst
// of mutations into one write.
func WithSaveDelay(d time.Duration) Option {
	return func(s *Store) { s.saveDelay = d }
}

func New(gw Gateway, opts ...Option) *Store {
	s := &Store{
		gateway:   gw,
		log:       logging.Discard(),
		newID:     uuid.NewString,
		items:     []models.Destination{},
		listeners: make(map[int]func([]models.Destination)),
		errFns:    make(map[int]func(error)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Initialize loads the saved list and makes the store ready. It runs once;
// later calls return nil. A load failure is logged and returned, and the
// store continues with an empty list.
func (s *Store) Initialize(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	s.mu.Lock()
	st := s.state
	s.mu.Unlock()
	if st != stateNew {
		return nil
	}

	list, loadErr := s.gateway.Load(ctx)
	if loadErr != nil {
		s.log.Error(ctx, "failed to load destinations, starting with an empty list", "error", loadErr)
		list = nil
	}

	saver := persistence.NewSaver(s.gateway.Save, s.saveDelay, s.log)
	saver.SetErrorHandler(s.reportError)

	s.mu.Lock()
	s.items = models.Clone(list)
	s.saver = saver
	s.state = stateReady
	snap := models.Clone(s.items)
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.log.Info(ctx, "store initialized", "count", len(snap))
	publish(snap, listeners)

	return loadErr
}

// Add appends a new unvisited destination named after the trimmed rawName.
func (s *Store) Add(rawName string) (models.Destination, error) {
	name, err := models.NormalizeName(rawName)
	if err != nil {
		return models.Destination{}, err
	}

	s.mu.Lock()
	if err := s.readyLocked(); err != nil {
		s.mu.Unlock()
		return models.Destination{}, err
	}

	id, err := s.uniqueIDLocked()
	if err != nil {
		s.mu.Unlock()
		return models.Destination{}, err
	}

	d := models.Destination{ID: id, Name: name}
	s.items = append(s.items, d)
	snap, listeners := s.commitLocked()
	s.mu.Unlock()

	s.log.Debug(context.Background(), "destination added", "id", d.ID, "name", d.Name)
	publish(snap, listeners)
	return d, nil
}

// ToggleVisited flips the visited flag of the destination with id.
// It reports whether such a destination existed.
func (s *Store) ToggleVisited(id string) bool {
	s.mu.Lock()
	if s.readyLocked() != nil {
		s.mu.Unlock()
		return false
	}

	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	s.items[i].Visited = !s.items[i].Visited
	visited := s.items[i].Visited
	snap, listeners := s.commitLocked()
	s.mu.Unlock()

	s.log.Debug(context.Background(), "destination toggled", "id", id, "visited", visited)
	publish(snap, listeners)
	return true
}

// Delete removes the destination with id, keeping the order of the rest.
// It reports whether such a destination existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	if s.readyLocked() != nil {
		s.mu.Unlock()
		return false
	}

	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	s.items = append(s.items[:i:i], s.items[i+1:]...)
	snap, listeners := s.commitLocked()
	s.mu.Unlock()

	s.log.Debug(context.Background(), "destination deleted", "id", id)
	publish(snap, listeners)
	return true
}

// List returns a snapshot of the destinations in insertion order.
func (s *Store) List() []models.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Clone(s.items)
}

func (s *Store) Get(id string) (models.Destination, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.items[i], true
	}
	return models.Destination{}, false
}

// Ready reports whether Initialize has completed and Teardown has not run.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateReady
}

// OnChange registers fn to receive a snapshot after hydration and after every
// committed mutation. fn runs on the mutating goroutine, outside the store
// lock, so it may call List. The returned func unsubscribes.
func (s *Store) OnChange(fn func([]models.Destination)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// OnError registers fn to receive background save failures.
func (s *Store) OnError(fn func(error)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.errFns[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.errFns, id)
		s.mu.Unlock()
	}
}

// Flush writes the latest snapshot now if a save is pending.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	saver := s.saver
	s.mu.Unlock()

	if saver == nil {
		return nil
	}
	return saver.Flush(ctx)
}

// Teardown flushes pending saves and stops the background saver. Further
// mutations fail with ErrClosed. Safe to call more than once.
func (s *Store) Teardown(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	s.mu.Lock()
	prev := s.state
	s.state = stateClosed
	saver := s.saver
	s.mu.Unlock()

	if prev != stateReady || saver == nil {
		return nil
	}

	if err := saver.Close(ctx); err != nil {
		return fmt.Errorf("teardown: %w", err)
	}
	s.log.Info(ctx, "store closed")
	return nil
}

func (s *Store) readyLocked() error {
	switch s.state {
	case stateNew:
		return ErrNotInitialized
	case stateClosed:
		return ErrClosed
	}
	return nil
}

func (s *Store) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueIDLocked() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id != "" && s.indexLocked(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

// commitLocked schedules the post-mutation snapshot for saving and returns it
// together with the listeners to notify once the lock is released.
func (s *Store) commitLocked() ([]models.Destination, []func([]models.Destination)) {
	snap := models.Clone(s.items)
	s.saver.Schedule(snap)
	return snap, s.listenersLocked()
}

func (s *Store) listenersLocked() []func([]models.Destination) {
	out := make([]func([]models.Destination), 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

func (s *Store) reportError(err error) {
	s.mu.Lock()
	fns := make([]func(error), 0, len(s.errFns))
	for _, fn := range s.errFns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(err)
	}
}

func publish(snap []models.Destination, listeners []func([]models.Destination)) {
	for _, fn := range listeners {
		fn(models.Clone(snap))
	}
}
