package config

import "time"

// Config is the top-level ragserver configuration, corresponding to
// .ragserver.yml. All values here are process-wide; per-request provider
// settings arrive in the request body instead.
type Config struct {
	Port int `yaml:"port" koanf:"port"`

	// ProviderTimeout bounds every outbound provider call. It is a fixed
	// per-process setting, not a per-request parameter.
	ProviderTimeout time.Duration `yaml:"provider_timeout" koanf:"provider_timeout"`

	// CondenseQuestion enables history-aware question rephrasing before
	// retrieval.
	CondenseQuestion bool `yaml:"condense_question" koanf:"condense_question"`

	// AllowAllOrigins relaxes CORS for development.
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`

	// DataDir is where the local chromem store persists, when used.
	DataDir string `yaml:"data_dir" koanf:"data_dir"`
}
