package main

import (
	"github.com/rmitchellscott/WxMinima/fetch"
	"go.uber.org/zap"
)

// newFetcher builds the cached Aviation Weather Center fetcher
func newFetcher(cfg Config, logger *zap.Logger) *fetch.CachedFetcher {
	client := fetch.NewClient(cfg.Client, logger.Named("client"))
	cache := fetch.NewCache(cfg.TAFTTL, cfg.METARTTL, nil, logger.Named("cache"))
	return fetch.NewCachedFetcher(client, cache, logger.Named("fetch"))
}
