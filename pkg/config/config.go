package config

import "time"

// Collection endpoints
const (
	BaseURL     = "https://www.google-analytics.com"
	CollectPath = "/collect"
	BatchPath   = "/batch"
	DebugPath   = "/debug"

	CollectURL      = BaseURL + CollectPath
	BatchURL        = BaseURL + BatchPath
	DebugCollectURL = BaseURL + DebugPath + CollectPath
)

// Protocol defaults and limits
const (
	DefaultProtocolVersion = 1
	MaxHitsPerRequest      = 20
)

// Transport timeouts
const (
	HTTPTimeout = 10 * time.Second
	SendTimeout = 5 * time.Second
)

// Batcher defaults
const (
	DefaultFlushEvery   = 5 * time.Second
	DefaultMaxBatchSize = MaxHitsPerRequest
)
