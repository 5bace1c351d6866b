package linereader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentWordFiles bounds how many word files are read at once.
const maxConcurrentWordFiles = 4

// ReadWords reads one word per line. Surrounding whitespace is trimmed;
// blank lines and lines starting with '#' are skipped.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// LoadWordFiles reads the given word files concurrently and adds each one to
// the vocabulary as soon as it has been read, so completion improves while
// loading is still in progress. It is meant to run in the background:
//
//	go func() {
//		if err := lr.LoadWordFiles(ctx, "keywords.txt", "functions.txt"); err != nil {
//			log.Printf("vocabulary: %v", err)
//		}
//	}()
//
// The first error cancels files that have not been read yet; words from
// files already read stay in the vocabulary.
func (lr *LineReader) LoadWordFiles(ctx context.Context, paths ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentWordFiles)

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			words, err := readWordFile(path)
			if err != nil {
				return err
			}
			lr.AddWords(words)
			lr.logger.Debug("vocabulary loaded", "file", path, "words", len(words))
			return nil
		})
	}
	return g.Wait()
}

// WatchWordFiles loads the given word files and then reloads each one
// whenever it is written or recreated, until ctx is done. The vocabulary
// only grows: a word removed from a file stays completable.
//
// The parent directories are watched rather than the files, so editors that
// save by renaming a temporary file over the original keep working.
func (lr *LineReader) WatchWordFiles(ctx context.Context, paths ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create word file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve word file %s: %w", path, err)
		}
		watched[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}

	if err := lr.LoadWordFiles(ctx, paths...); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if _, ok := watched[filepath.Clean(event.Name)]; !ok {
				continue
			}
			words, err := readWordFile(event.Name)
			if err != nil {
				lr.logger.Warn("failed to reload word file", "file", event.Name, "err", err)
				continue
			}
			lr.AddWords(words)
			lr.logger.Debug("vocabulary reloaded", "file", event.Name, "words", len(words))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			lr.logger.Warn("word file watcher error", "err", err)
		}
	}
}

func readWordFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word file: %w", err)
	}
	defer file.Close()

	words, err := ReadWords(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read word file %s: %w", path, err)
	}
	return words, nil
}
