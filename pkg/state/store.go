package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-i2p/logger"
	opts "github.com/goliatone/go-options-menu"
	"github.com/goliatone/go-options-menu/pkg/activity"
	"github.com/google/uuid"
)

// Store is the in-memory option map paired with its Backend. All methods are
// safe for concurrent use; a single mutex serialises edits and saves.
type Store struct {
	mu         sync.Mutex
	backend    Backend
	converters *opts.Converters
	values     Document
	meta       Meta

	emitter      *activity.Emitter
	actorID      string
	saveAttempts int
	saveBackoff  time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithActivity emits commit, save and load events through emitter.
func WithActivity(emitter *activity.Emitter) Option {
	return func(s *Store) {
		s.emitter = emitter
	}
}

// WithActor stamps emitted events with actorID.
func WithActor(actorID string) Option {
	return func(s *Store) {
		s.actorID = actorID
	}
}

// WithSaveRetry retries a failed backend save up to attempts times in total,
// sleeping backoff between attempts. Values below 1 mean a single attempt.
func WithSaveRetry(attempts int, backoff time.Duration) Option {
	return func(s *Store) {
		s.saveAttempts = attempts
		s.saveBackoff = backoff
	}
}

// New constructs an empty store. It does not read the backend; call Load.
func New(backend Backend, converters *opts.Converters, options ...Option) *Store {
	if converters == nil {
		converters = opts.DefaultConverters()
	}
	s := &Store{
		backend:      backend,
		converters:   converters,
		values:       Document{},
		saveAttempts: 1,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.saveAttempts < 1 {
		s.saveAttempts = 1
	}
	return s
}

// Open constructs a store and loads it. The returned store is always usable;
// a non-nil error is a *PersistenceError describing why it started empty.
func Open(ctx context.Context, backend Backend, converters *opts.Converters, options ...Option) (*Store, error) {
	s := New(backend, converters, options...)
	return s, s.Load(ctx)
}

// OpenFile is Open over a FileBackend for path.
func OpenFile(ctx context.Context, path string, converters *opts.Converters, options ...Option) (*Store, error) {
	return Open(ctx, NewFileBackend(path), converters, options...)
}

// Location identifies the backing document.
func (s *Store) Location() string {
	return s.backend.Location()
}

// Converters returns the converter registry used to encode and decode values.
func (s *Store) Converters() *opts.Converters {
	return s.converters
}

// Load replaces the in-memory map with the backend content. Any failure
// leaves the store empty, logs a diagnostic line and returns the error.
func (s *Store) Load(ctx context.Context) error {
	return s.load(ctx, true)
}

// Reload discards unsaved edits and re-reads the backend. On failure the
// current in-memory state is kept.
func (s *Store) Reload(ctx context.Context) error {
	return s.load(ctx, false)
}

func (s *Store) load(ctx context.Context, resetOnFailure bool) error {
	s.mu.Lock()
	doc, meta, err := s.read(ctx)
	if err != nil {
		if resetOnFailure {
			s.values = Document{}
			s.meta = Meta{}
		}
		s.mu.Unlock()
		log.WithError(err).WithFields(logger.Fields{
			"at":         "state.Store.Load",
			"path":       s.backend.Location(),
			"keep_state": !resetOnFailure,
		}).Warn("options_load_failed")
		return err
	}
	s.values = doc
	s.meta = meta
	input := s.storeEventInput()
	s.mu.Unlock()

	s.emit(ctx, activity.BuildOptionsLoadedEvent(input))
	return nil
}

func (s *Store) read(ctx context.Context) (Document, Meta, error) {
	doc, meta, ok, err := s.backend.Load(ctx)
	if err != nil {
		return nil, Meta{}, persistenceError("load", s.backend.Location(), err)
	}
	if !ok || doc == nil {
		return Document{}, Meta{}, nil
	}
	return doc.Clone(), cloneMeta(meta), nil
}

// Save writes the full in-memory map to the backend, replacing what was
// there. Failures are logged and returned; the in-memory map is untouched so
// the caller may retry.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()

	meta := cloneMeta(s.meta)
	meta.SnapshotID = uuid.NewString()

	var (
		saved Meta
		err   error
	)
	for attempt := 1; attempt <= s.saveAttempts; attempt++ {
		saved, err = s.backend.Save(ctx, s.values.Clone(), meta)
		if err == nil {
			break
		}
		if attempt < s.saveAttempts {
			log.WithError(err).WithFields(logger.Fields{
				"at":      "state.Store.Save",
				"path":    s.backend.Location(),
				"attempt": attempt,
			}).Debug("options_save_retry")
			if !sleep(ctx, s.saveBackoff) {
				err = ctx.Err()
				break
			}
		}
	}
	if err != nil {
		s.mu.Unlock()
		err = persistenceError("save", s.backend.Location(), err)
		log.WithError(err).WithFields(logger.Fields{
			"at":   "state.Store.Save",
			"path": s.backend.Location(),
		}).Error("options_save_failed")
		return err
	}
	if saved.SnapshotID == "" {
		saved.SnapshotID = meta.SnapshotID
	}
	s.meta = saved
	input := s.storeEventInput()
	s.mu.Unlock()

	s.emit(ctx, activity.BuildOptionsSavedEvent(input))
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// GetRaw returns the stored string for name.
func (s *Store) GetRaw(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[name]
	return v, ok
}

// SetRaw upserts the stored string for name. It does not write the backend.
func (s *Store) SetRaw(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

// Values returns a copy of the in-memory map.
func (s *Store) Values() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Clone()
}

// Meta returns the metadata of the last load or save.
func (s *Store) Meta() Meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneMeta(s.meta)
}

// ResolveValue decodes the stored value of name through d, returning d's
// fallback when the value is absent or cannot be decoded. It never fails.
func (s *Store) ResolveValue(name string, d opts.Descriptor) any {
	raw, ok := s.GetRaw(name)
	if !ok {
		return d.Fallback()
	}
	v, ok := d.DecodeValue(s.converters, raw)
	if !ok {
		return d.Fallback()
	}
	return v
}

// CommitValue encodes v through d and stores it under name.
func (s *Store) CommitValue(ctx context.Context, name string, d opts.Descriptor, v any) error {
	raw, err := d.EncodeValue(s.converters, v)
	if err != nil {
		return fmt.Errorf("state: commit %q: %w", name, err)
	}

	s.mu.Lock()
	old, existed := s.values[name]
	s.values[name] = raw
	input := s.storeEventInput()
	s.mu.Unlock()

	input.Name = name
	input.Kind = d.Kind().String()
	input.OldValue = old
	input.NewValue = raw
	input.Unset = !existed
	s.emit(ctx, activity.BuildOptionCommittedEvent(input))
	return nil
}

// Resolve is the typed form of ResolveValue.
func Resolve[T any](s *Store, name string, d *opts.TypeDescriptor[T]) T {
	raw, ok := s.GetRaw(name)
	if !ok {
		return d.FallbackValue()
	}
	v, ok := d.Decode(s.converters, raw)
	if !ok {
		return d.FallbackValue()
	}
	return v
}

// Commit is the typed form of CommitValue.
func Commit[T any](ctx context.Context, s *Store, name string, d *opts.TypeDescriptor[T], v T) error {
	return s.CommitValue(ctx, name, d, v)
}

// storeEventInput must be called with s.mu held.
func (s *Store) storeEventInput() activity.OptionEventInput {
	return activity.OptionEventInput{
		ActorID:    s.actorID,
		Location:   s.backend.Location(),
		SnapshotID: s.meta.SnapshotID,
		Count:      len(s.values),
	}
}

func (s *Store) emit(ctx context.Context, event activity.Event) {
	if !s.emitter.Enabled() {
		return
	}
	if err := s.emitter.Emit(ctx, event); err != nil {
		log.WithError(err).WithFields(logger.Fields{
			"at":   "state.Store.emit",
			"verb": event.Verb,
		}).Warn("options_activity_hook_failed")
	}
}
