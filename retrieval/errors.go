package retrieval

import "errors"

var (
	// ErrKnowledgeBaseRequired is returned when no knowledge base is provided.
	ErrKnowledgeBaseRequired = errors.New("knowledge base required")

	// ErrInvalidOption is returned for out-of-range option values.
	ErrInvalidOption = errors.New("invalid option")
)
