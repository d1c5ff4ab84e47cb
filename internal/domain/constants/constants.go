// Package constants holds shared domain-level constant values.
package constants

// Pub/Sub provider names selectable through configuration.
const (
	// PubSubProviderLocal emulates Pub/Sub push over plain HTTP for development.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

// Deployment environment names.
const (
	// EnvDevelop is the local development environment.
	EnvDevelop = "develop"
	// EnvProduction is the production environment.
	EnvProduction = "production"
)
