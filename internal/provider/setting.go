package provider

import "fmt"

// LLMProvider identifies a large language model backend.
type LLMProvider string

const (
	LLMOpenAI         LLMProvider = "openai"
	LLMAzureOpenAI    LLMProvider = "azure_openai"
	LLMOllama         LLMProvider = "ollama"
	LLMHuggingFaceTGI LLMProvider = "huggingface_tgi"
)

// LLMProviders lists the registered LLM provider tags.
func LLMProviders() []LLMProvider {
	return []LLMProvider{LLMOpenAI, LLMAzureOpenAI, LLMOllama, LLMHuggingFaceTGI}
}

// EMProvider identifies an embedding model backend.
type EMProvider string

const (
	EMOpenAI      EMProvider = "openai"
	EMAzureOpenAI EMProvider = "azure_openai"
	EMOllama      EMProvider = "ollama"
)

// EMProviders lists the registered embedding provider tags.
func EMProviders() []EMProvider {
	return []EMProvider{EMOpenAI, EMAzureOpenAI, EMOllama}
}

// VectorStoreProvider identifies a vector store backend.
type VectorStoreProvider string

const (
	VectorStoreChromem    VectorStoreProvider = "chromem"
	VectorStoreOpenSearch VectorStoreProvider = "opensearch"
	VectorStorePGVector   VectorStoreProvider = "pgvector"
)

// VectorStoreProviders lists the registered vector store provider tags.
func VectorStoreProviders() []VectorStoreProvider {
	return []VectorStoreProvider{VectorStoreChromem, VectorStoreOpenSearch, VectorStorePGVector}
}

// LLMSetting configures one LLM invocation backend. The Provider tag
// determines which optional fields are required; Validate enforces that.
type LLMSetting struct {
	Provider    LLMProvider `json:"provider"`
	APIKey      SecretRef   `json:"api_key"`
	Model       string      `json:"model"`
	Temperature float64     `json:"temperature"`
	Prompt      string      `json:"prompt"`

	// Azure OpenAI only.
	DeploymentName string `json:"deployment_name,omitempty"`
	APIVersion     string `json:"api_version,omitempty"`

	// Azure OpenAI, Ollama and HuggingFace TGI.
	BaseURL string `json:"base_url,omitempty"`
}

// Validate checks that the fields required by the provider tag are present.
func (s LLMSetting) Validate() error {
	if s.Temperature < 0 || s.Temperature > 2 {
		return fmt.Errorf("temperature %g out of range [0, 2]", s.Temperature)
	}
	if s.Prompt == "" {
		return fmt.Errorf("prompt template is required")
	}
	switch s.Provider {
	case LLMOpenAI:
		if s.APIKey.IsZero() {
			return fmt.Errorf("openai: api_key is required")
		}
		if s.Model == "" {
			return fmt.Errorf("openai: model is required")
		}
	case LLMAzureOpenAI:
		if s.APIKey.IsZero() {
			return fmt.Errorf("azure_openai: api_key is required")
		}
		if s.DeploymentName == "" {
			return fmt.Errorf("azure_openai: deployment_name is required")
		}
		if s.APIVersion == "" {
			return fmt.Errorf("azure_openai: api_version is required")
		}
		if s.BaseURL == "" {
			return fmt.Errorf("azure_openai: base_url is required")
		}
	case LLMOllama:
		if s.BaseURL == "" {
			return fmt.Errorf("ollama: base_url is required")
		}
		if s.Model == "" {
			return fmt.Errorf("ollama: model is required")
		}
	case LLMHuggingFaceTGI:
		if s.BaseURL == "" {
			return fmt.Errorf("huggingface_tgi: base_url is required")
		}
	case "":
		return fmt.Errorf("provider tag is required")
	default:
		return NewError(KindUnknownProvider, string(s.Provider), "validate LLM setting", nil)
	}
	return nil
}

// EMSetting configures one embedding model backend.
type EMSetting struct {
	Provider EMProvider `json:"provider"`
	APIKey   SecretRef  `json:"api_key"`
	Model    string     `json:"model"`

	// Azure OpenAI only.
	DeploymentName string `json:"deployment_name,omitempty"`
	APIVersion     string `json:"api_version,omitempty"`

	// Azure OpenAI and Ollama.
	BaseURL string `json:"base_url,omitempty"`
}

// Validate checks that the fields required by the provider tag are present.
func (s EMSetting) Validate() error {
	switch s.Provider {
	case EMOpenAI:
		if s.APIKey.IsZero() {
			return fmt.Errorf("openai: api_key is required")
		}
		if s.Model == "" {
			return fmt.Errorf("openai: model is required")
		}
	case EMAzureOpenAI:
		if s.APIKey.IsZero() {
			return fmt.Errorf("azure_openai: api_key is required")
		}
		if s.DeploymentName == "" {
			return fmt.Errorf("azure_openai: deployment_name is required")
		}
		if s.APIVersion == "" {
			return fmt.Errorf("azure_openai: api_version is required")
		}
		if s.BaseURL == "" {
			return fmt.Errorf("azure_openai: base_url is required")
		}
	case EMOllama:
		if s.BaseURL == "" {
			return fmt.Errorf("ollama: base_url is required")
		}
		if s.Model == "" {
			return fmt.Errorf("ollama: model is required")
		}
	case "":
		return fmt.Errorf("provider tag is required")
	default:
		return NewError(KindUnknownProvider, string(s.Provider), "validate EM setting", nil)
	}
	return nil
}

// VectorStoreSetting configures one vector store backend. K is the default
// number of neighbours used by the setting-check probe.
type VectorStoreSetting struct {
	Provider VectorStoreProvider `json:"provider"`
	Host     string              `json:"host,omitempty"`
	Port     int                 `json:"port,omitempty"`
	Username string              `json:"username,omitempty"`
	Password SecretRef           `json:"password,omitempty"`
	K        int                 `json:"k,omitempty"`

	// PGVector only. Table falls back to the request's index name.
	ConnString string `json:"conn_string,omitempty"`
	Table      string `json:"table,omitempty"`

	// Chromem only.
	PersistPath string `json:"persist_path,omitempty"`
}

// Validate checks that the fields required by the provider tag are present.
func (s VectorStoreSetting) Validate() error {
	switch s.Provider {
	case VectorStoreChromem:
		// In-process store; nothing mandatory beyond the tag.
	case VectorStoreOpenSearch:
		if s.Host == "" {
			return fmt.Errorf("opensearch: host is required")
		}
		if s.Port <= 0 {
			return fmt.Errorf("opensearch: port is required")
		}
		if s.Username == "" {
			return fmt.Errorf("opensearch: username is required")
		}
		if s.Password.IsZero() {
			return fmt.Errorf("opensearch: password is required")
		}
	case VectorStorePGVector:
		if s.ConnString == "" {
			return fmt.Errorf("pgvector: conn_string is required")
		}
	case "":
		return fmt.Errorf("provider tag is required")
	default:
		return NewError(KindUnknownProvider, string(s.Provider), "validate vector store setting", nil)
	}
	return nil
}

// ObservabilityProvider identifies a tracing backend.
type ObservabilityProvider string

const (
	ObservabilityLangfuse ObservabilityProvider = "langfuse"
)

// ObservabilitySetting configures the optional tracing sink forwarded to the
// chain. The sink itself is an external collaborator; only the tag and
// endpoint are validated here.
type ObservabilitySetting struct {
	Provider  ObservabilityProvider `json:"provider"`
	URL       string                `json:"url,omitempty"`
	SecretKey SecretRef             `json:"secret_key,omitempty"`
	PublicKey string                `json:"public_key,omitempty"`
}

// Validate checks that the fields required by the provider tag are present.
func (s ObservabilitySetting) Validate() error {
	switch s.Provider {
	case ObservabilityLangfuse:
		if s.URL == "" {
			return fmt.Errorf("langfuse: url is required")
		}
	case "":
		return fmt.Errorf("provider tag is required")
	default:
		return NewError(KindUnknownProvider, string(s.Provider), "validate observability setting", nil)
	}
	return nil
}
