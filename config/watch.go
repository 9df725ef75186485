package config

import (
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
)

// WatchLogLevel watches the .env file and invokes onChange with the new
// LOG_LEVEL value whenever it is rewritten. Lets operators retune logging
// on a running server without a restart.
//
// Returns a stop function. Watching is best-effort: if the file or the
// watcher is unavailable the stop function is still valid and a nil error
// is returned only when the watch is actually active.
func WatchLogLevel(path string, onChange func(level string)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return func() {}, err
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return func() {}, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				vars, err := godotenv.Read(path)
				if err != nil {
					continue
				}
				level, ok := vars["LOG_LEVEL"]
				if !ok {
					// Fall back to the process environment.
					level = os.Getenv("LOG_LEVEL")
				}
				if level != "" {
					onChange(level)
				}
			case <-watcher.Errors:
				// Keep watching; transient errors are not fatal.
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		watcher.Close()
	}, nil
}
