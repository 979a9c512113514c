package constants

// Environment names
const (
	EnvLocal      = "local"
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Currency is the only currency memberships are denominated in.
const Currency = "MXN"

// Supported user interface languages
const (
	LanguageEnglish = "en"
	LanguageSpanish = "es"
)
