package catalog

import (
	"context"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
)

// ScheduleRepository stores venue schedule documents. Venue-local contents
// live inside the document.
type ScheduleRepository interface {
	Get(ctx context.Context, venueID string) (*domain.ScheduleDocument, error)
	Replace(ctx context.Context, doc *domain.ScheduleDocument) error
}

// SharedCatalogRepository stores the shared content catalog.
type SharedCatalogRepository interface {
	GetSharedContents(ctx context.Context) ([]domain.ContentItem, error)
	SaveSharedContents(ctx context.Context, contents []domain.ContentItem) error
}

// TransactionManager groups the read-modify-write document updates.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
