package constants

import "time"

var CacheTTL = struct {
	Result time.Duration
}{
	Result: 60 * time.Minute, // 1h - processed result lookups
}

var MediaTimeouts = struct {
	Info     time.Duration
	Download time.Duration
}{
	Info:     30 * time.Second,  // yt-dlp metadata print
	Download: 120 * time.Second, // yt-dlp audio extraction
}

var TranscribeTimeouts = struct {
	Request time.Duration
}{
	Request: 90 * time.Second,
}

var MetadataTimeouts = struct {
	Page    time.Duration
	YouTube time.Duration
}{
	Page:    10 * time.Second,
	YouTube: 10 * time.Second,
}

var GenerationLimits = struct {
	MaxHooks           int
	MaxContentKeywords int
	MinSummaryInput    int
	ShortSummaryLength int
	MaxSummaryLength   int
	MaxPageBytes       int64
}{
	MaxHooks:           8,
	MaxContentKeywords: 10,
	MinSummaryInput:    50,
	ShortSummaryLength: 200,
	MaxSummaryLength:   400,
	MaxPageBytes:       2 << 20,
}

var RequestLimits = struct {
	MaxBatchSize   int
	MaxURLLength   int
	PersistTimeout time.Duration
	LookupTimeout  time.Duration
	HealthTimeout  time.Duration
}{
	MaxBatchSize:   10,
	MaxURLLength:   2048,
	PersistTimeout: 5 * time.Second,
	LookupTimeout:  5 * time.Second,
	HealthTimeout:  2 * time.Second,
}

var CircuitBreakerConfig = struct {
	FailureThreshold int
	ResetTimeout     time.Duration
}{
	FailureThreshold: 3,                // 3 consecutive failures open the circuit
	ResetTimeout:     60 * time.Second, // wait before the trial call
}

var CacheKeys = struct {
	ResultPrefix string
}{
	ResultPrefix: "ayovirals:result:",
}
