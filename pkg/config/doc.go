// Package config loads typed configuration structs from environment variables.
//
// Configuration structs declare their sources with `env` tags and defaults with
// `envDefault` tags. A local .env file, when present, is loaded once before the
// first parse so development environments work without exporting variables.
//
//	type AuthConfig struct {
//		Secret    string        `env:"AUTH_SECRET,required"`
//		BearerTTL time.Duration `env:"AUTH_BEARER_TTL" envDefault:"30m"`
//	}
//
//	var cfg AuthConfig
//	config.MustLoad(&cfg)
package config
