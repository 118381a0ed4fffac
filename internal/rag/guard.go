package rag

import "log"

// GuardCheckFailedError reports a substantive answer produced with zero
// source documents. That combination means retrieval failed or the prompt
// is misconfigured upstream, so it is surfaced rather than accepted.
type GuardCheckFailedError struct {
	Answer string
}

func (e *GuardCheckFailedError) Error() string {
	return "guard check failed: the answer cites no source documents"
}

// ApplyGuard enforces the citation contract on a chain result: an answer is
// accompanied by sources if and only if it is not a decline-to-answer. The
// decline sentinel is the caller-supplied no_answer prompt input.
//
// If the model declined but documents were retrieved, the sources are
// cleared — citing documents for a non-answer is misleading. If the model
// answered with no sources at all, GuardCheckFailedError is returned. The
// transform is pure apart from the correction log line.
func ApplyGuard(inputs PromptInputs, result ChainResult) (ChainResult, error) {
	sentinel := inputs[InputNoAnswer]

	if result.Answer == sentinel {
		if len(result.SourceDocuments) > 0 {
			log.Printf("rag: guard: removing %d source documents from a declined answer",
				len(result.SourceDocuments))
			result.SourceDocuments = nil
		}
		return result, nil
	}

	if len(result.SourceDocuments) == 0 {
		return ChainResult{}, &GuardCheckFailedError{Answer: result.Answer}
	}

	return result, nil
}
