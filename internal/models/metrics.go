package models

import "time"

// SystemMetrics is an aggregated snapshot of runtime counters.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	RentalsCreated           uint64    `json:"rentals_created"`
	AvailabilityRejections   uint64    `json:"availability_rejections"`
	NotificationsDelivered   uint64    `json:"notifications_delivered"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
