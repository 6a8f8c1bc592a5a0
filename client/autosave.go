package client

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"
)

// DefaultAutoSaveDelay is the debounce window between the last draft change
// and the save call.
const DefaultAutoSaveDelay = 5 * time.Second

// ErrClosed is returned by Flush after the auto-saver has been closed.
var ErrClosed = errors.New("autosaver closed")

// SaveFunc persists a draft, typically Client.SaveDraft.
type SaveFunc func(ctx context.Context, draft Draft) error

// Draft is the editable working copy watched by the AutoSaver. It mirrors
// the save payload: an ID of zero means the post is not yet persisted.
type Draft struct {
	ID      int      `json:"id,omitempty"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// empty reports whether the draft has nothing worth persisting.
func (d Draft) empty() bool {
	return strings.TrimSpace(d.Title) == "" && strings.TrimSpace(d.Content) == ""
}

// AutoSaver debounces draft changes and triggers save calls, with at most
// one save in flight at a time.
//
// It is a timer-owning state machine over three states: Idle (no save
// pending), Pending (a change armed the debounce timer), and Saving (a save
// call is in flight). Every state transition happens on the coordinator
// goroutine, so no lock covers the timer or the draft.
//
//   - A change while Idle or Pending resets the timer (debounce, not
//     throttle).
//   - The timer firing starts a save with the draft as of that moment,
//     unless title and content are both empty, in which case it returns to
//     Idle without a network call.
//   - A change while Saving is recorded; once the save resolves, Pending is
//     re-armed if the draft differs from what was just saved.
//   - Flush cancels any pending timer, waits out an in-flight save (a save
//     cannot be cancelled once issued), and saves immediately. Flush and
//     auto-saves serialize through the coordinator goroutine.
//   - A failed save surfaces through Err and the OnError hook, then returns
//     to Idle so the next change retries. Failures are non-fatal.
//
// Change detection is deep equality of the whole draft, tag order included.
type AutoSaver struct {
	save    SaveFunc
	delay   time.Duration
	onSaved func(Draft, time.Time)
	onError func(error)

	updates chan Draft
	flushes chan flushRequest
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once

	mu        sync.Mutex
	lastSaved time.Time
	lastErr   error
	saving    bool
}

type flushRequest struct {
	ctx context.Context
	ack chan error
}

// AutoSaverOption configures an AutoSaver.
type AutoSaverOption func(*AutoSaver)

// WithDelay overrides the debounce window.
func WithDelay(d time.Duration) AutoSaverOption {
	return func(a *AutoSaver) { a.delay = d }
}

// WithOnSaved registers a hook invoked after each successful save. It runs
// on the coordinator goroutine and should return quickly.
func WithOnSaved(fn func(draft Draft, at time.Time)) AutoSaverOption {
	return func(a *AutoSaver) { a.onSaved = fn }
}

// WithOnError registers a hook invoked after each failed save. It runs on
// the coordinator goroutine and should return quickly.
func WithOnError(fn func(error)) AutoSaverOption {
	return func(a *AutoSaver) { a.onError = fn }
}

// NewAutoSaver starts an auto-saver around the given save function.
func NewAutoSaver(save SaveFunc, opts ...AutoSaverOption) *AutoSaver {
	a := &AutoSaver{
		save:    save,
		delay:   DefaultAutoSaveDelay,
		updates: make(chan Draft, 64),
		flushes: make(chan flushRequest),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	go a.run()
	return a
}

// Update records a new draft state. Equal drafts are ignored; a real change
// arms (or resets) the debounce timer.
func (a *AutoSaver) Update(draft Draft) {
	select {
	case a.updates <- draft:
	case <-a.quit:
	}
}

// Flush saves the current draft immediately, short-circuiting any pending
// timer. It returns the save error, nil when the draft was empty and
// nothing was sent, or ErrClosed.
func (a *AutoSaver) Flush(ctx context.Context) error {
	req := flushRequest{ctx: ctx, ack: make(chan error, 1)}
	select {
	case a.flushes <- req:
		return <-req.ack
	case <-a.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastSaved returns when the last successful save completed, zero if none.
func (a *AutoSaver) LastSaved() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastSaved
}

// Err returns the error of the most recent save attempt, nil after a
// success.
func (a *AutoSaver) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Saving reports whether a save call is currently in flight.
func (a *AutoSaver) Saving() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saving
}

// Close stops the coordinator. An in-flight save is waited out; a pending
// timer is dropped without saving. Close blocks until the goroutine exits.
func (a *AutoSaver) Close() {
	a.once.Do(func() { close(a.quit) })
	<-a.done
}

func (a *AutoSaver) run() {
	defer close(a.done)

	var (
		draft    Draft     // latest observed draft
		lastSent Draft     // draft as of the most recent save call
		timer    *time.Timer
		timerC   <-chan time.Time
		inflight chan error // non-nil while a save call is running
	)

	stopTimer := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}
	armTimer := func() {
		stopTimer()
		timer = time.NewTimer(a.delay)
		timerC = timer.C
	}
	beginSave := func() {
		lastSent = draft
		a.setSaving(true)
		res := make(chan error, 1)
		inflight = res
		d := draft
		go func() { res <- a.save(context.Background(), d) }()
	}
	finishSave := func(err error) {
		inflight = nil
		a.setSaving(false)
		a.recordResult(lastSent, err)
	}

	for {
		select {
		case d := <-a.updates:
			if reflect.DeepEqual(d, draft) {
				continue
			}
			draft = d
			if inflight != nil {
				// Recorded; re-armed once the save resolves.
				continue
			}
			armTimer()

		case <-timerC:
			timer = nil
			timerC = nil
			if draft.empty() {
				continue
			}
			beginSave()

		case err := <-inflight:
			finishSave(err)
			if !reflect.DeepEqual(draft, lastSent) && !draft.empty() {
				armTimer()
			}

		case req := <-a.flushes:
			stopTimer()
			if inflight != nil {
				finishSave(<-inflight)
			}
			if draft.empty() {
				req.ack <- nil
				continue
			}
			lastSent = draft
			a.setSaving(true)
			err := a.save(req.ctx, draft)
			a.setSaving(false)
			a.recordResult(lastSent, err)
			req.ack <- err

		case <-a.quit:
			stopTimer()
			if inflight != nil {
				finishSave(<-inflight)
			}
			return
		}
	}
}

func (a *AutoSaver) setSaving(v bool) {
	a.mu.Lock()
	a.saving = v
	a.mu.Unlock()
}

func (a *AutoSaver) recordResult(sent Draft, err error) {
	a.mu.Lock()
	a.lastErr = err
	var at time.Time
	if err == nil {
		at = time.Now()
		a.lastSaved = at
	}
	a.mu.Unlock()

	if err != nil {
		if a.onError != nil {
			a.onError(err)
		}
		return
	}
	if a.onSaved != nil {
		a.onSaved(sent, at)
	}
}
