// Package commonwords provides per-language sets of high-frequency words.
//
// The mining pipeline uses these sets to tell "the AI rephrased an ordinary
// sentence" apart from "the recogniser missed a rare term". Word lists are
// embedded in the binary as newline-delimited text files, one per language
// code, and loaded lazily on first request.
//
// A missing or unreadable list degrades to the empty set rather than an
// error: every filter rule that consults the set is skipped when it is
// empty, so mining keeps working for languages without a list.
package commonwords

import (
	"context"
	"embed"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

//go:embed data
var resources embed.FS

// Cache lazily loads and caches one word set per language code.
// It is safe for concurrent use; concurrent first requests for the same
// language share a single load via singleflight. Entries are never evicted.
type Cache struct {
	mu    sync.RWMutex
	sets  map[string]map[string]struct{}
	group singleflight.Group
}

// NewCache returns an initialised, empty [Cache].
func NewCache() *Cache {
	return &Cache{
		sets: make(map[string]map[string]struct{}),
	}
}

// Words returns the common-word set for the given language code, loading it
// on first access. Unknown languages yield an empty set; the result is never
// nil. The returned map is shared and must be treated as read-only.
func (c *Cache) Words(ctx context.Context, language string) map[string]struct{} {
	lang := strings.ToLower(strings.TrimSpace(language))

	c.mu.RLock()
	set, ok := c.sets[lang]
	c.mu.RUnlock()
	if ok {
		return set
	}

	v, _, _ := c.group.Do(lang, func() (any, error) {
		// Re-check under the write path: another goroutine may have stored
		// the set between our RUnlock and the singleflight call.
		c.mu.RLock()
		set, ok := c.sets[lang]
		c.mu.RUnlock()
		if ok {
			return set, nil
		}

		set = load(lang)

		c.mu.Lock()
		c.sets[lang] = set
		c.mu.Unlock()
		return set, nil
	})
	return v.(map[string]struct{})
}

// load reads the embedded word list for lang. On any failure it returns an
// empty set — the documented graceful-degradation behaviour.
func load(lang string) map[string]struct{} {
	data, err := resources.ReadFile("data/" + lang + ".txt")
	if err != nil {
		slog.Warn("commonwords: no word list for language; common-word filters disabled",
			"language", lang)
		return map[string]struct{}{}
	}
	return parse(string(data))
}

// parse converts a newline-delimited word list into a set. Blank lines and
// lines starting with '#' are ignored; words are trimmed and lowercased.
func parse(data string) map[string]struct{} {
	set := make(map[string]struct{}, 1024)
	for _, line := range strings.Split(data, "\n") {
		word := strings.ToLower(strings.TrimSpace(line))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}
