package morphscape

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ContentUpdate is one reload attempt. Err is set when the file no longer
// parses; the previous content should then be kept.
type ContentUpdate struct {
	Content *Content
	Err     error
}

// ContentWatcher reloads a content file when it changes on disk. It watches
// the parent directory so editors that save by rename are picked up.
type ContentWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	updates  chan ContentUpdate
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	log      Logger
}

func NewContentWatcher(path string, log Logger) (*ContentWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if log == nil {
		log = NewNopLogger()
	}
	return &ContentWatcher{
		watcher:  w,
		path:     abs,
		debounce: 150 * time.Millisecond,
		updates:  make(chan ContentUpdate, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		log:      log,
	}, nil
}

// Updates delivers the latest reload result. Only the newest undelivered
// update is kept.
func (cw *ContentWatcher) Updates() <-chan ContentUpdate { return cw.updates }

// Start begins watching in a goroutine. It is a no-op when already running.
func (cw *ContentWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.running {
		return nil
	}
	if err := cw.watcher.Add(filepath.Dir(cw.path)); err != nil {
		return fmt.Errorf("watching %s: %w", cw.path, err)
	}
	cw.running = true
	go cw.run(ctx)
	cw.log.Infof("Watching content file %s", cw.path)
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (cw *ContentWatcher) Stop() {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		_ = cw.watcher.Close()
		return
	}
	cw.running = false
	cw.mu.Unlock()

	close(cw.stopCh)
	<-cw.doneCh
	if err := cw.watcher.Close(); err != nil {
		cw.log.Warnf("Closing content watcher: %v", err)
	}
}

func (cw *ContentWatcher) run(ctx context.Context) {
	defer close(cw.doneCh)

	ticker := time.NewTicker(cw.debounce / 3)
	defer ticker.Stop()

	var pending bool
	var lastEvent time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopCh:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			cw.log.Debugf("Content event %s on %s", event.Op, event.Name)
			pending = true
			lastEvent = time.Now()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Errorf("Content watcher: %v", err)

		case <-ticker.C:
			if !pending || time.Since(lastEvent) < cw.debounce {
				continue
			}
			pending = false
			c, err := LoadContent(cw.path)
			cw.publish(ContentUpdate{Content: c, Err: err})
		}
	}
}

func (cw *ContentWatcher) publish(u ContentUpdate) {
	for {
		select {
		case cw.updates <- u:
			return
		default:
		}
		select {
		case <-cw.updates:
		default:
		}
	}
}
