package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
)

// Service manages content catalogs. Every venue owns a local catalog inside
// its schedule document; a shared system-wide catalog feeds venues through
// copy-on-import, so later shared edits never leak into venues.
type Service struct {
	schedules ScheduleRepository
	shared    SharedCatalogRepository
	txManager TransactionManager
	logger    Logger
}

func NewService(
	schedules ScheduleRepository,
	shared SharedCatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		schedules: schedules,
		shared:    shared,
		txManager: txManager,
		logger:    logger,
	}
}

// ListVenueContents returns a venue's local catalog.
func (s *Service) ListVenueContents(ctx context.Context, venueID string) ([]domain.ContentItem, error) {
	doc, err := s.loadDoc(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return doc.Contents, nil
}

// AddVenueContent adds an item to a venue's local catalog. Missing ids are
// assigned.
func (s *Service) AddVenueContent(ctx context.Context, venueID string, item domain.ContentItem) (*domain.ContentItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if err := item.Validate(); err != nil {
		s.logger.Warn("AddVenueContent: invalid item for venue=%s: %v", venueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("AddVenueContent: venue=%s content=%s name=%q", venueID, item.ID, item.Name)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		doc, err := s.loadDoc(ctx, venueID)
		if err != nil {
			return err
		}
		if _, ok := domain.FindContent(doc.Contents, item.ID); ok {
			return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrDuplicateContentID)
		}
		doc.Contents = append(doc.Contents, item)
		if err := s.schedules.Replace(ctx, doc); err != nil {
			return fmt.Errorf("%w: AddVenueContent - save document: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logError("AddVenueContent", venueID, err)
		return nil, err
	}
	return &item, nil
}

// UpdateVenueContent replaces an item in a venue's local catalog.
func (s *Service) UpdateVenueContent(ctx context.Context, venueID string, item domain.ContentItem) error {
	if err := item.Validate(); err != nil {
		s.logger.Warn("UpdateVenueContent: invalid item for venue=%s: %v", venueID, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("UpdateVenueContent: venue=%s content=%s", venueID, item.ID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		doc, err := s.loadDoc(ctx, venueID)
		if err != nil {
			return err
		}
		for i, c := range doc.Contents {
			if c.ID == item.ID {
				doc.Contents[i] = item
				if err := s.schedules.Replace(ctx, doc); err != nil {
					return fmt.Errorf("%w: UpdateVenueContent - save document: %v", ErrInternal, err)
				}
				return nil
			}
		}
		return ErrContentNotFound
	})
	if err != nil {
		s.logError("UpdateVenueContent", venueID, err)
	}
	return err
}

// DeleteVenueContent removes an item from a venue's local catalog. Items
// still referenced by scheduled slots cannot be removed.
func (s *Service) DeleteVenueContent(ctx context.Context, venueID, contentID string) error {
	s.logger.Info("DeleteVenueContent: venue=%s content=%s", venueID, contentID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		doc, err := s.loadDoc(ctx, venueID)
		if err != nil {
			return err
		}
		for _, slots := range doc.Schedule {
			for _, slot := range slots {
				if slot.ContentID == contentID {
					return ErrContentInUse
				}
			}
		}
		for i, c := range doc.Contents {
			if c.ID == contentID {
				doc.Contents = append(doc.Contents[:i], doc.Contents[i+1:]...)
				if err := s.schedules.Replace(ctx, doc); err != nil {
					return fmt.Errorf("%w: DeleteVenueContent - save document: %v", ErrInternal, err)
				}
				return nil
			}
		}
		return ErrContentNotFound
	})
	if err != nil {
		s.logError("DeleteVenueContent", venueID, err)
	}
	return err
}

// ListSharedContents returns the shared catalog.
func (s *Service) ListSharedContents(ctx context.Context) ([]domain.ContentItem, error) {
	contents, err := s.shared.GetSharedContents(ctx)
	if err != nil {
		s.logger.Error("ListSharedContents: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSharedContents - repository error: %v", ErrInternal, err)
	}
	return contents, nil
}

// SaveSharedContent adds or replaces an item in the shared catalog.
func (s *Service) SaveSharedContent(ctx context.Context, item domain.ContentItem) (*domain.ContentItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if err := item.Validate(); err != nil {
		s.logger.Warn("SaveSharedContent: invalid item: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("SaveSharedContent: content=%s name=%q", item.ID, item.Name)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		contents, err := s.shared.GetSharedContents(ctx)
		if err != nil {
			return fmt.Errorf("%w: SaveSharedContent - load catalog: %v", ErrInternal, err)
		}
		replaced := false
		for i, c := range contents {
			if c.ID == item.ID {
				contents[i] = item
				replaced = true
				break
			}
		}
		if !replaced {
			contents = append(contents, item)
		}
		if err := s.shared.SaveSharedContents(ctx, contents); err != nil {
			return fmt.Errorf("%w: SaveSharedContent - save catalog: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("SaveSharedContent: %v", err)
		return nil, err
	}
	return &item, nil
}

// DeleteSharedContent removes an item from the shared catalog. Venue copies
// made by earlier imports are untouched.
func (s *Service) DeleteSharedContent(ctx context.Context, contentID string) error {
	s.logger.Info("DeleteSharedContent: content=%s", contentID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		contents, err := s.shared.GetSharedContents(ctx)
		if err != nil {
			return fmt.Errorf("%w: DeleteSharedContent - load catalog: %v", ErrInternal, err)
		}
		for i, c := range contents {
			if c.ID == contentID {
				contents = append(contents[:i], contents[i+1:]...)
				if err := s.shared.SaveSharedContents(ctx, contents); err != nil {
					return fmt.Errorf("%w: DeleteSharedContent - save catalog: %v", ErrInternal, err)
				}
				return nil
			}
		}
		return ErrContentNotFound
	})
	if err != nil {
		s.logError("DeleteSharedContent", "", err)
	}
	return err
}

// ImportSharedContent copies a shared item into a venue's local catalog,
// keeping the shared id. The copy is by value; the venue item and the
// shared item evolve independently afterwards. A venue that already holds
// the id keeps its copy untouched and the import is a no-op.
func (s *Service) ImportSharedContent(ctx context.Context, venueID, sharedContentID string) (*domain.ContentItem, error) {
	s.logger.Info("ImportSharedContent: venue=%s shared content=%s", venueID, sharedContentID)

	var imported domain.ContentItem
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		contents, err := s.shared.GetSharedContents(ctx)
		if err != nil {
			return fmt.Errorf("%w: ImportSharedContent - load shared catalog: %v", ErrInternal, err)
		}
		source, ok := domain.FindContent(contents, sharedContentID)
		if !ok {
			return ErrContentNotFound
		}

		doc, err := s.loadDoc(ctx, venueID)
		if err != nil {
			return err
		}

		if existing, ok := domain.FindContent(doc.Contents, sharedContentID); ok {
			imported = existing
			return nil
		}

		imported = source
		doc.Contents = append(doc.Contents, imported)

		if err := s.schedules.Replace(ctx, doc); err != nil {
			return fmt.Errorf("%w: ImportSharedContent - save document: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logError("ImportSharedContent", venueID, err)
		return nil, err
	}

	s.logger.Info("ImportSharedContent: venue=%s imported content=%s from shared=%s",
		venueID, imported.ID, sharedContentID)
	return &imported, nil
}

func (s *Service) loadDoc(ctx context.Context, venueID string) (*domain.ScheduleDocument, error) {
	doc, err := s.schedules.Get(ctx, venueID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("%w: load schedule document: %v", ErrInternal, err)
	}
	return doc, nil
}

func (s *Service) logError(op, venueID string, err error) {
	switch {
	case errors.Is(err, ErrVenueNotFound), errors.Is(err, ErrContentNotFound),
		errors.Is(err, ErrContentInUse), errors.Is(err, ErrInvalidInput):
		s.logger.Warn("%s: venue=%s: %v", op, venueID, err)
	default:
		s.logger.Error("%s: venue=%s: %v", op, venueID, err)
	}
}
