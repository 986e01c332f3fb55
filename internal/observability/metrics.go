package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// SuggestionsSubmitted counts edit suggestions created, labeled by outcome
	// ("accepted" for a stored suggestion, "rejected_ban", "rejected_duplicate",
	// "rejected_validation" for refused submissions).
	SuggestionsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtmap_suggestions_submitted_total",
		Help: "Total edit suggestion submissions by outcome",
	}, []string{"outcome"})

	// SuggestionDecisions counts moderator decisions on suggestions, labeled by
	// decision status and scope ("field" or "suggestion").
	SuggestionDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtmap_suggestion_decisions_total",
		Help: "Total moderation decisions on edit suggestions",
	}, []string{"status", "scope"})

	// ReportsFiled counts content reports by target type.
	ReportsFiled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtmap_reports_filed_total",
		Help: "Total content reports filed by target type",
	}, []string{"target_type"})

	// ReportsResolved counts report resolutions by action ("dismissed" or "content_removed").
	ReportsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtmap_reports_resolved_total",
		Help: "Total reports resolved by action",
	}, []string{"action"})

	// BansIssued counts user bans created by category.
	BansIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtmap_bans_issued_total",
		Help: "Total user bans issued by category",
	}, []string{"category"})

	// PhotoUploads counts court photo uploads by outcome ("ok" or "error").
	PhotoUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtmap_photo_uploads_total",
		Help: "Total court photo uploads by outcome",
	}, []string{"outcome"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "courtmap_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CacheRequests counts cache lookups by key prefix and result ("hit" or "miss").
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtmap_cache_requests_total",
		Help: "Total cache lookups by key prefix and result",
	}, []string{"prefix", "result"})
)

const gormStartKey = "observability:query_start"

// InstrumentGorm registers callbacks that feed DatabaseQueryLatency for every
// query, create, update, delete, row and raw statement.
func InstrumentGorm(db *gorm.DB) {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(gormStartKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			v, ok := tx.InstanceGet(gormStartKey)
			if !ok {
				return
			}
			start, ok := v.(time.Time)
			if !ok {
				return
			}
			table := tx.Statement.Table
			if table == "" {
				table = "unknown"
			}
			DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
		}
	}

	db.Callback().Query().Before("gorm:query").Register("observability:before_query", before)
	db.Callback().Query().After("gorm:query").Register("observability:after_query", after("query"))
	db.Callback().Create().Before("gorm:create").Register("observability:before_create", before)
	db.Callback().Create().After("gorm:create").Register("observability:after_create", after("create"))
	db.Callback().Update().Before("gorm:update").Register("observability:before_update", before)
	db.Callback().Update().After("gorm:update").Register("observability:after_update", after("update"))
	db.Callback().Delete().Before("gorm:delete").Register("observability:before_delete", before)
	db.Callback().Delete().After("gorm:delete").Register("observability:after_delete", after("delete"))
	db.Callback().Row().Before("gorm:row").Register("observability:before_row", before)
	db.Callback().Row().After("gorm:row").Register("observability:after_row", after("row"))
	db.Callback().Raw().Before("gorm:raw").Register("observability:before_raw", before)
	db.Callback().Raw().After("gorm:raw").Register("observability:after_raw", after("raw"))
}
