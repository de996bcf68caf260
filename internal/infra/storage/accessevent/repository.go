package accessevent

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	"github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/notify"
	"github.com/nishigaki-sys/school-booking-v2/pkg/dbmetrics"
	"github.com/nishigaki-sys/school-booking-v2/pkg/psqlbuilder"
)

// Repository is the append-only access event log behind the funnel report.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append records one visitor event for a venue.
func (r *Repository) Append(ctx context.Context, venueID string, kind domain.EventKind) (*domain.AccessEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("access_events").
		Columns("venue_id", "kind").
		Values(venueID, string(kind)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert: %v", ErrBuildQuery, err)
	}

	event := &domain.AccessEvent{VenueID: venueID, Kind: kind}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&event.ID, &event.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	if err := notify.Emit(ctx, executor, notify.ChannelAccessEvents, venueID); err != nil {
		return nil, err
	}
	return event, nil
}

// CountByKind returns how many events of each kind a venue received between
// from (inclusive) and to (exclusive). Kinds with no events are absent from
// the map; callers zero-fill the funnel stages themselves.
func (r *Repository) CountByKind(ctx context.Context, venueID string, from, to time.Time) (map[domain.EventKind]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("kind", "COUNT(*)").
		From("access_events").
		Where(squirrel.Eq{"venue_id": venueID}).
		GroupBy("kind")
	if !from.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"created_at": from})
	}
	if !to.IsZero() {
		builder = builder.Where(squirrel.Lt{"created_at": to})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByKind - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByKind - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.EventKind]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
		}
		counts[domain.EventKind(kind)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
	}
	return counts, nil
}

// CountTotal returns the page view count per venue across all venues, used
// by the global rollup. Venues with no traffic are absent from the map.
func (r *Repository) CountTotal(ctx context.Context, kind domain.EventKind) (map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("venue_id", "COUNT(*)").
		From("access_events").
		Where(squirrel.Eq{"kind": string(kind)}).
		GroupBy("venue_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountTotal - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountTotal - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var venueID string
		var count int
		if err := rows.Scan(&venueID, &count); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
		}
		counts[venueID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
	}
	return counts, nil
}

// DeleteByVenue removes a venue's event history during a venue cascade delete.
func (r *Repository) DeleteByVenue(ctx context.Context, venueID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("access_events").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByVenue - build delete: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByVenue - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}
