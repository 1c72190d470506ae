package collector

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"StockTerminal/internal/model"
)

// Cache stores encoded fetch results.
type Cache interface {
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Default cache lifetimes.
const (
	DefaultHistoryTTL = 5 * time.Minute
	DefaultQuoteTTL   = 15 * time.Second
	DefaultProfileTTL = time.Hour
)

// CachedFetcher serves repeated fetches from a Cache. Cache errors fall through to Fetcher.
type CachedFetcher struct {
	Fetcher    Fetcher
	Cache      Cache
	HistoryTTL time.Duration
	QuoteTTL   time.Duration
	ProfileTTL time.Duration
}

// NewCachedFetcher wraps f with the default lifetimes.
func NewCachedFetcher(f Fetcher, c Cache) *CachedFetcher {
	return &CachedFetcher{
		Fetcher:    f,
		Cache:      c,
		HistoryTTL: DefaultHistoryTTL,
		QuoteTTL:   DefaultQuoteTTL,
		ProfileTTL: DefaultProfileTTL,
	}
}

func (f *CachedFetcher) Name() string { return f.Fetcher.Name() }

func (f *CachedFetcher) FetchHistory(ctx context.Context, symbol, rng string) (model.PriceSeries, error) {
	var out model.PriceSeries
	key := f.key("history", symbol, rng)
	if f.load(ctx, key, &out) {
		return out, nil
	}
	out, err := f.Fetcher.FetchHistory(ctx, symbol, rng)
	if err != nil {
		return out, err
	}
	f.store(ctx, key, out, f.HistoryTTL)
	return out, nil
}

func (f *CachedFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	var out model.Quote
	key := f.key("quote", symbol, "")
	if f.load(ctx, key, &out) {
		return out, nil
	}
	out, err := f.Fetcher.FetchQuote(ctx, symbol)
	if err != nil {
		return out, err
	}
	f.store(ctx, key, out, f.QuoteTTL)
	return out, nil
}

func (f *CachedFetcher) FetchProfile(ctx context.Context, symbol string) (model.CompanyInfo, error) {
	var out model.CompanyInfo
	key := f.key("profile", symbol, "")
	if f.load(ctx, key, &out) {
		return out, nil
	}
	out, err := f.Fetcher.FetchProfile(ctx, symbol)
	if err != nil {
		return out, err
	}
	f.store(ctx, key, out, f.ProfileTTL)
	return out, nil
}

func (f *CachedFetcher) key(kind, symbol, rng string) string {
	k := f.Fetcher.Name() + ":" + kind + ":" + symbol
	if rng != "" {
		k += ":" + rng
	}
	return k
}

func (f *CachedFetcher) load(ctx context.Context, key string, v interface{}) bool {
	raw, ok, err := f.Cache.Get(ctx, key)
	if err != nil {
		log.Printf("[WARN] cache get %s: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Printf("[WARN] cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (f *CachedFetcher) store(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARN] cache encode %s: %v", key, err)
		return
	}
	if err := f.Cache.Set(ctx, key, raw, ttl); err != nil {
		log.Printf("[WARN] cache set %s: %v", key, err)
	}
}
