package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pageza/greenmeal/backend/internal/cache"
	"github.com/pageza/greenmeal/backend/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrWordNotFound is returned when the dictionary has no entry for a word.
var ErrWordNotFound = errors.New("word not found in dictionary")

// DictionaryDefinition is one sense of a word.
type DictionaryDefinition struct {
	Definition string `json:"definition"`
}

// DictionaryMeaning groups the definitions of one part of speech.
type DictionaryMeaning struct {
	PartOfSpeech string                 `json:"partOfSpeech"`
	Definitions  []DictionaryDefinition `json:"definitions"`
}

// DictionaryEntry is one headword returned by the dictionary API.
type DictionaryEntry struct {
	Word     string              `json:"word"`
	Meanings []DictionaryMeaning `json:"meanings"`
}

// WordLookup resolves a word to its dictionary entries.
type WordLookup interface {
	Lookup(ctx context.Context, word string) ([]DictionaryEntry, error)
}

// DictionaryConfig configures the dictionary client.
type DictionaryConfig struct {
	BaseURL           string
	RequestsPerSecond float64
	CacheTTL          time.Duration
	HTTPClient        *http.Client
}

// DictionaryClient looks words up in a free dictionary API.
type DictionaryClient struct {
	baseURL  string
	client   *http.Client
	limiter  *rate.Limiter
	cache    cache.Cache
	cacheTTL time.Duration
	log      *zap.Logger
	metrics  *metrics.Metrics
}

// NewDictionaryClient creates a client. c may be nil to disable caching.
func NewDictionaryClient(cfg DictionaryConfig, c cache.Cache, log *zap.Logger, m *metrics.Metrics) *DictionaryClient {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &DictionaryClient{
		baseURL:  cfg.BaseURL,
		client:   client,
		limiter:  newLimiter(cfg.RequestsPerSecond),
		cache:    c,
		cacheTTL: cfg.CacheTTL,
		log:      log,
		metrics:  m,
	}
}

// cachedLookup is what gets stored per word. Misses are cached too.
type cachedLookup struct {
	Found   bool              `json:"found"`
	Entries []DictionaryEntry `json:"entries,omitempty"`
}

// Lookup returns the entries for word, or ErrWordNotFound on a 404.
func (d *DictionaryClient) Lookup(ctx context.Context, word string) ([]DictionaryEntry, error) {
	if cached, ok := d.fromCache(ctx, word); ok {
		if !cached.Found {
			return nil, ErrWordNotFound
		}
		return cached.Entries, nil
	}

	start := time.Now()
	var entries []DictionaryEntry
	status, err := getJSON(ctx, d.client, d.limiter, d.baseURL+"/entries/en/"+url.PathEscape(word), &entries)
	if err == nil && status == http.StatusNotFound {
		d.store(ctx, word, cachedLookup{Found: false})
		d.metrics.ObserveExternal("dictionary", start, nil)
		return nil, ErrWordNotFound
	}
	if err == nil && (status < 200 || status > 299) {
		err = fmt.Errorf("dictionary lookup failed: %s", http.StatusText(status))
	}
	d.metrics.ObserveExternal("dictionary", start, err)
	if err != nil {
		return nil, err
	}

	d.store(ctx, word, cachedLookup{Found: true, Entries: entries})
	return entries, nil
}

func (d *DictionaryClient) fromCache(ctx context.Context, word string) (cachedLookup, bool) {
	var out cachedLookup
	if d.cache == nil {
		return out, false
	}
	raw, err := d.cache.Get(ctx, "dictionary:"+word)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			d.log.Warn("dictionary cache read failed", zap.String("word", word), zap.Error(err))
		}
		d.metrics.CacheResult("dictionary", false)
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		d.metrics.CacheResult("dictionary", false)
		return out, false
	}
	d.metrics.CacheResult("dictionary", true)
	return out, true
}

func (d *DictionaryClient) store(ctx context.Context, word string, v cachedLookup) {
	if d.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := d.cache.Set(ctx, "dictionary:"+word, raw, d.cacheTTL); err != nil {
		d.log.Warn("dictionary cache write failed", zap.String("word", word), zap.Error(err))
	}
}
