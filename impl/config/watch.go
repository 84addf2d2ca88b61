package config

import (
	"math"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

var (
	waitFor = 100 * time.Millisecond
	mu      sync.Mutex
	timers  = make(map[string]*time.Timer)
)

// WatchConfigFile creates a file system notifier on the passed configuration
// file and reloads the configuration whenever the file is rewritten. The
// parent directory is watched rather than the file itself because editors and
// configmap mounts typically replace the file instead of writing in place.
//
// fsnotify can emanate many messages during creation of a single file. The
// approach implemented below to address that uses time-based event
// deduplication based on:
//
// https://github.com/fsnotify/fsnotify/blob/main/cmd/fsnotify/dedup.go
//
// The returned function stops the watcher.
func WatchConfigFile(configFile string) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(configFile)); err != nil {
		watcher.Close()
		return nil, err
	}
	log.Debugf("watching configuration file %s", configFile)
	go func() {
		for {
			select {
			case _, ok := <-watcher.Errors:
				if !ok {
					// Channel was closed (i.e. Watcher.Close() was called)
					return
				}
			case event, ok := <-watcher.Events:
				if !ok {
					// Channel was closed (i.e. Watcher.Close() was called)
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				if filepath.Clean(event.Name) != filepath.Clean(configFile) {
					continue
				}

				mu.Lock()
				t, ok := timers[event.Name]
				mu.Unlock()

				// No timer yet, so create one.
				if !ok {
					t = time.AfterFunc(math.MaxInt64, func() { reload(configFile, event.Name) })
					t.Stop()
					mu.Lock()
					timers[event.Name] = t
					mu.Unlock()
				}
				t.Reset(waitFor)
			}
		}
	}()
	return watcher.Close, nil
}

// reload re-parses the configuration file after the dedup timer fires.
func reload(configFile string, eventName string) {
	mu.Lock()
	delete(timers, eventName)
	mu.Unlock()
	if err := Load(configFile); err != nil {
		log.Errorf("error reloading configuration: %s", err)
		return
	}
	log.Infof("reloaded configuration from %s", configFile)
}
