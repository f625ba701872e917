// Package constants holds provider and environment names shared across layers.
package constants

const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

const (
	SnapshotDriverBlob     = "blob"
	SnapshotDriverPostgres = "postgres"
)

// LowStockTopic is the push topic for low stock alerts.
const LowStockTopic = "low-stock"
