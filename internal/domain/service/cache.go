package service

import "time"

// Cache is a process-local key/value cache with per-entry expiry.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	// DeletePrefix drops every entry whose key starts with prefix.
	DeletePrefix(prefix string)
}
