package application

import "contexere/internal/domain"

// Re-export domain types for use by adapters
type (
	HistoryError = domain.HistoryError
)
