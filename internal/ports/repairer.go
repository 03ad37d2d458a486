package ports

import (
	"context"

	"github.com/utilfix/go_class_repair/internal/core/domain"
)

// Repairer defines the interface for repairing corrupted text.
type Repairer interface {
	Repair(ctx context.Context, text string) domain.Result
}
