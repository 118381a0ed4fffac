package rag

// AssembleResponse maps a guarded chain result to the external response
// shape. Footnotes are de-duplicated by document identifier with the
// first-seen title and URL winning; source order is preserved. debugTrace
// is attached as-is and may be nil.
func AssembleResponse(result ChainResult, debugTrace any) *Response {
	footnotes := make([]Footnote, 0, len(result.SourceDocuments))
	seen := make(map[string]bool)

	for _, doc := range result.SourceDocuments {
		id := doc.Metadata.ID
		if seen[id] {
			continue
		}
		seen[id] = true
		footnotes = append(footnotes, Footnote{
			Identifier: id,
			Title:      doc.Metadata.Title,
			URL:        doc.Metadata.URL,
		})
	}

	return &Response{
		Answer: TextWithFootnotes{
			Text:      result.Answer,
			Footnotes: footnotes,
		},
		Debug: debugTrace,
	}
}
