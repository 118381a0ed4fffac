package provider

// MetadataCode identifies a piece of metadata attached to a setting check.
type MetadataCode string

const (
	MetadataVectorStoreDocumentCount MetadataCode = "VECTOR_STORE_DOCUMENT_COUNT"
)

// Metadata is one informational value gathered during a setting check.
type Metadata struct {
	Code  MetadataCode `json:"code"`
	Value any          `json:"value"`
}

// SettingStatus is the result of probing a provider setting against the
// live backend.
type SettingStatus struct {
	Valid    bool       `json:"valid"`
	Metadata []Metadata `json:"metadata,omitempty"`
}
