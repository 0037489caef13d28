package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/andreabedini/souffle/internal/types"
)

// StartWatching re-minimises program files under the given directories
// whenever they change.
func (e *Engine) StartWatching(dirs []string) error {
	if e.isWatching {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	e.watcher = watcher
	e.watchDirs = dirs

	for _, dir := range e.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return e.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.isWatching = true
	go e.watchLoop()
	return nil
}

func (e *Engine) StopWatching() error {
	if !e.isWatching {
		e.logger.Warn("not watching")
		return nil
	}

	e.isWatching = false
	return e.watcher.Close()
}

func (e *Engine) watchLoop() {
	for e.isWatching {
		select {
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".yaml") && !strings.HasSuffix(event.Name, ".yml") {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	time.Sleep(100 * time.Millisecond)

	_, changes, err := e.RunFile(event.Name)
	if err != nil {
		e.logger.Error("error minimising program", zap.String("file", event.Name), zap.Error(err))
		return
	}
	e.reportChanges(event.Name, changes)
}

func (e *Engine) reportChanges(filename string, changes []tt.Change) {
	if len(changes) == 0 {
		e.logger.Info("program already minimal", zap.String("file", filename))
		return
	}

	e.logger.Info("minimised program", zap.String("file", filename), zap.Int("passes", len(changes)))
	for _, change := range changes {
		e.logger.Info("- "+change.Pass, zap.String("detail", change.Message))
	}
}
