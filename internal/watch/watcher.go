package watch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/notify"
)

// Kind identifies which collection changed.
type Kind string

const (
	KindSchedule     Kind = "schedule"
	KindReservation  Kind = "reservation"
	KindAccessEvents Kind = "access_events"
)

// Change is one change notification. VenueID names the venue whose data
// changed; subscribers re-read the affected collection themselves.
type Change struct {
	Kind    Kind
	VenueID string
}

var ErrWatcherClosed = errors.New("watch: watcher closed")

var channelKinds = map[string]Kind{
	notify.ChannelSchedules:    KindSchedule,
	notify.ChannelReservations: KindReservation,
	notify.ChannelAccessEvents: KindAccessEvents,
}

// Watcher listens on the Postgres notification channels the repositories
// emit on and fans changes out to subscribers. Slow subscribers drop
// notifications rather than block the listener; a drop only delays a
// re-read until the next change.
type Watcher struct {
	listener *pq.Listener
	logs     Logger

	mu     sync.Mutex
	subs   map[int]chan Change
	nextID int
	closed bool

	done chan struct{}
}

// Options tunes the underlying pq listener.
type Options struct {
	MinReconnect time.Duration
	MaxReconnect time.Duration
	PingInterval time.Duration
}

// New connects a listener to every change channel and starts dispatching.
func New(dsn string, opts Options, logs Logger) (*Watcher, error) {
	w := &Watcher{
		logs: logs,
		subs: make(map[int]chan Change),
		done: make(chan struct{}),
	}

	w.listener = pq.NewListener(dsn, opts.MinReconnect, opts.MaxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logs.Warn("watch: listener event %d: %v", ev, err)
		}
	})

	for channel := range channelKinds {
		if err := w.listener.Listen(channel); err != nil {
			w.listener.Close()
			return nil, err
		}
	}

	go w.run(opts.PingInterval)
	return w, nil
}

// Subscribe registers a change consumer. Cancel the context to unsubscribe.
func (w *Watcher) Subscribe(ctx context.Context) (<-chan Change, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil, ErrWatcherClosed
	}
	id := w.nextID
	w.nextID++
	ch := make(chan Change, 16)
	w.subs[id] = ch
	w.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-w.done:
		}
		w.mu.Lock()
		if _, ok := w.subs[id]; ok {
			delete(w.subs, id)
			close(ch)
		}
		w.mu.Unlock()
	}()

	return ch, nil
}

// Close stops the listener and closes all subscriber channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	for id, ch := range w.subs {
		delete(w.subs, id)
		close(ch)
	}
	w.mu.Unlock()

	return w.listener.Close()
}

func (w *Watcher) run(pingInterval time.Duration) {
	if pingInterval <= 0 {
		pingInterval = 90 * time.Second
	}
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case n := <-w.listener.Notify:
			if n == nil {
				// Reconnect marker. Subscribers must assume missed
				// notifications and re-read on the next change.
				w.logs.Warn("watch: listener reconnected, notifications may have been missed")
				continue
			}
			kind, ok := channelKinds[n.Channel]
			if !ok {
				continue
			}
			w.dispatch(Change{Kind: kind, VenueID: n.Extra})
		case <-ticker.C:
			if err := w.listener.Ping(); err != nil {
				w.logs.Error("watch: listener ping failed: %v", err)
			}
		}
	}
}

func (w *Watcher) dispatch(change Change) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ch := range w.subs {
		select {
		case ch <- change:
		default:
		}
	}
}
