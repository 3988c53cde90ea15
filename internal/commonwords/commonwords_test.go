package commonwords_test

import (
	"context"
	"sync"
	"testing"

	"github.com/quailtone/vocabmine/internal/commonwords"
)

func TestCache_English(t *testing.T) {
	t.Parallel()

	cache := commonwords.NewCache()
	words := cache.Words(context.Background(), "en")

	if len(words) == 0 {
		t.Fatal("english word set is empty")
	}
	for _, w := range []string{"the", "might", "tomorrow", "because"} {
		if _, ok := words[w]; !ok {
			t.Errorf("word %q missing from english set", w)
		}
	}
	// Rare/technical terms must not be in the high-frequency list.
	for _, w := range []string{"gpu", "voiceink", "ink"} {
		if _, ok := words[w]; ok {
			t.Errorf("word %q unexpectedly present in english set", w)
		}
	}
}

func TestCache_UnknownLanguageDegradesToEmptySet(t *testing.T) {
	t.Parallel()

	cache := commonwords.NewCache()
	words := cache.Words(context.Background(), "xx")
	if words == nil {
		t.Fatal("Words returned nil, want empty set")
	}
	if len(words) != 0 {
		t.Errorf("unknown language returned %d words, want 0", len(words))
	}
}

func TestCache_NormalizesLanguageCode(t *testing.T) {
	t.Parallel()

	cache := commonwords.NewCache()
	a := cache.Words(context.Background(), "EN")
	b := cache.Words(context.Background(), " en ")
	if len(a) == 0 || len(b) == 0 {
		t.Fatal("language code normalisation failed")
	}
}

func TestCache_ConcurrentFirstAccess(t *testing.T) {
	t.Parallel()

	cache := commonwords.NewCache()
	var wg sync.WaitGroup
	results := make([]map[string]struct{}, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.Words(context.Background(), "en")
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if len(r) == 0 {
			t.Fatalf("goroutine %d got empty set", i)
		}
	}
}
