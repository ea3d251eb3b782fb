package telemetry

// SLI metric names used for instrumentation.
const (
	// Latency
	MetricAPILatencyP50 = "api.latency.p50"
	MetricAPILatencyP95 = "api.latency.p95"
	MetricAPILatencyP99 = "api.latency.p99"

	// Throughput
	MetricRequestsPerSec = "api.requests_per_second"

	// Availability
	MetricUptime = "service.uptime_percentage"

	// Business
	MetricURLsBuilt       = "business.urls_built"
	MetricSnapshotsStored = "business.snapshots_stored"
	MetricKeyValidations  = "business.key_validations"
	MetricSnapshotBacklog = "business.snapshot_backlog"
)
