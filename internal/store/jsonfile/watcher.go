package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	debounceDelay   = 50 * time.Millisecond
	eventBufferSize = 100
)

// ChangeEvent reports that a store file was rewritten.
type ChangeEvent struct {
	File      string
	Timestamp time.Time
}

// Watcher watches a data directory for changes to store files using
// fsnotify. Bursts of writes to one file are debounced into a single event.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher

	mu          sync.Mutex
	subscribers map[string][]chan<- ChangeEvent // file name -> channels
	debounce    map[string]*time.Timer          // file name -> debounce timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher for dir. The directory is created if it
// doesn't exist.
func NewWatcher(dir string) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		dir:         dir,
		watcher:     fw,
		subscribers: make(map[string][]chan<- ChangeEvent),
		debounce:    make(map[string]*time.Timer),
		ctx:         ctx,
		cancel:      cancel,
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Watch returns a channel that receives an event whenever the named file
// changes. The name "*" matches every JSON file in the directory. The
// channel is closed when ctx is done or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context, name string) <-chan ChangeEvent {
	ch := make(chan ChangeEvent, eventBufferSize)

	w.mu.Lock()
	w.subscribers[name] = append(w.subscribers[name], ch)
	w.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			w.unsubscribe(name, ch)
		case <-w.ctx.Done():
		}
	}()

	return ch
}

// Close stops watching and closes all subscriber channels.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	for _, timer := range w.debounce {
		timer.Stop()
	}
	for _, subs := range w.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
	w.subscribers = make(map[string][]chan<- ChangeEvent)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) unsubscribe(name string, ch chan<- ChangeEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	subs := w.subscribers[name]
	for i, sub := range subs {
		if sub == ch {
			w.subscribers[name] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
	if len(w.subscribers[name]) == 0 {
		delete(w.subscribers, name)
	}
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	// Atomic writes land as a create/rename of the final name; the .tmp
	// file itself is noise.
	name := filepath.Base(event.Name)
	if !strings.HasSuffix(name, ".json") {
		return
	}

	w.mu.Lock()
	if timer, ok := w.debounce[name]; ok {
		timer.Stop()
	}
	w.debounce[name] = time.AfterFunc(debounceDelay, func() {
		w.notify(name)
	})
	w.mu.Unlock()
}

func (w *Watcher) notify(name string) {
	event := ChangeEvent{File: name, Timestamp: time.Now()}

	w.mu.Lock()
	defer w.mu.Unlock()

	for pattern, subs := range w.subscribers {
		if pattern != "*" && pattern != name {
			continue
		}
		for _, ch := range subs {
			select {
			case ch <- event:
			default:
				// subscriber is behind; drop
			}
		}
	}

	delete(w.debounce, name)
}
