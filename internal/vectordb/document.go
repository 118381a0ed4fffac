package vectordb

// Document represents a retrievable chunk of indexed content. Title and URL
// come from the chunk's metadata at indexing time; URL may be empty for
// documents without a public source.
type Document struct {
	ID      string
	Content string
	Title   string
	URL     string

	// Extra backend metadata, forwarded untouched.
	Metadata map[string]string
}

// SearchResult pairs a document with its similarity score. The score is an
// internal ordering signal; callers above the store layer only see the
// result order.
type SearchResult struct {
	Document   Document
	Similarity float32
}
