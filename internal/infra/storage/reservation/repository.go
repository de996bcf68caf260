package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	"github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/notify"
	"github.com/nishigaki-sys/school-booking-v2/pkg/dbmetrics"
	"github.com/nishigaki-sys/school-booking-v2/pkg/psqlbuilder"
	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

var reservationColumns = []string{
	"id",
	"venue_id",
	"venue_name",
	"event_date",
	"start_time",
	"content_id",
	"course_name",
	"child_name",
	"guardian_name",
	"email",
	"phone",
	"grade",
	"source_type",
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"created_at",
}

// Repository is the global reservations collection. Reservations are
// venue-scoped rows; every filter path goes through the same query builder
// so the two date-field modes stay explicit and separate.
type Repository struct {
	db DBExecutor
}

// NewRepository returns a reservation repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts the reservation and fills in its creation timestamp.
// The caller assigns the id.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"id",
			"venue_id",
			"venue_name",
			"event_date",
			"start_time",
			"content_id",
			"course_name",
			"child_name",
			"guardian_name",
			"email",
			"phone",
			"grade",
			"source_type",
			"utm_source",
			"utm_medium",
			"utm_campaign",
		).
		Values(
			res.ID,
			res.VenueID,
			res.VenueName,
			string(res.Date),
			string(res.StartTime),
			res.ContentID,
			res.CourseName,
			res.ChildName,
			res.GuardianName,
			res.Email,
			res.Phone,
			string(res.Grade),
			string(res.SourceType),
			res.UTMSource,
			res.UTMMedium,
			res.UTMCampaign,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if err := notify.Emit(ctx, executor, notify.ChannelReservations, res.VenueID); err != nil {
		return nil, err
	}
	return res, nil
}

// GetByID reads one reservation.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrReservationNotFound, id)
		}
		return nil, err
	}
	return res, nil
}

// UpdateFields carries a partial reservation update. Contact fields update
// independently from the slot-move fields; a slot move always reassigns the
// full (date, startTime, contentId, courseName) tuple at once so a
// reservation can never point between two slots.
type UpdateFields struct {
	ChildName    *string
	GuardianName *string
	Email        *string
	Phone        *string

	MoveTo *SlotMove
}

// SlotMove is the explicit slot reassignment of a reservation.
type SlotMove struct {
	Date       types.DateString
	StartTime  types.TimeString
	ContentID  string
	CourseName string
}

// Update applies a partial update and returns the updated reservation.
func (r *Repository) Update(ctx context.Context, id string, fields UpdateFields) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("reservations").Where(squirrel.Eq{"id": id})
	if fields.ChildName != nil {
		builder = builder.Set("child_name", *fields.ChildName)
	}
	if fields.GuardianName != nil {
		builder = builder.Set("guardian_name", *fields.GuardianName)
	}
	if fields.Email != nil {
		builder = builder.Set("email", *fields.Email)
	}
	if fields.Phone != nil {
		builder = builder.Set("phone", *fields.Phone)
	}
	if fields.MoveTo != nil {
		builder = builder.
			Set("event_date", string(fields.MoveTo.Date)).
			Set("start_time", string(fields.MoveTo.StartTime)).
			Set("content_id", fields.MoveTo.ContentID).
			Set("course_name", fields.MoveTo.CourseName)
	}

	query, args, err := builder.
		Suffix("RETURNING " + strings.Join(reservationColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrReservationNotFound, id)
		}
		return nil, err
	}

	if err := notify.Emit(ctx, executor, notify.ChannelReservations, res.VenueID); err != nil {
		return nil, err
	}
	return res, nil
}

// Delete removes a reservation (an admin cancellation).
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING venue_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete: %v", ErrBuildQuery, err)
	}

	var venueID string
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&venueID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrReservationNotFound, id)
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return notify.Emit(ctx, executor, notify.ChannelReservations, venueID)
}

// DeleteByVenue removes every reservation of a venue during a venue
// cascade delete.
func (r *Repository) DeleteByVenue(ctx context.Context, venueID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByVenue - build delete: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByVenue - execute delete: %v", ErrExecQuery, err)
	}
	return notify.Emit(ctx, executor, notify.ChannelReservations, venueID)
}

// CountByKey counts reservations committed to one slot occurrence. This is
// the capacity ledger's booked count; it can legitimately exceed the slot's
// capacity and callers must not treat that as an error.
func (r *Repository) CountByKey(ctx context.Context, key domain.SlotKey) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{
			"venue_id":   key.VenueID,
			"event_date": string(key.Date),
			"start_time": string(key.StartTime),
			"content_id": key.ContentID,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByKey - build select: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByKey - execute select: %v", ErrExecQuery, err)
	}
	return count, nil
}

// List returns reservations matching the filter, ordered by event date and
// start time. Event-date ranges filter on the stored ISO date; created-date
// ranges filter on the creation timestamp against local-midnight bounds, so
// the two as-of semantics never mix.
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		OrderBy("event_date", "start_time", "created_at")

	if filter.VenueID != nil {
		builder = builder.Where(squirrel.Eq{"venue_id": *filter.VenueID})
	}
	if filter.ContentID != nil {
		builder = builder.Where(squirrel.Eq{"content_id": *filter.ContentID})
	}
	if filter.SourceType != nil {
		builder = builder.Where(squirrel.Eq{"source_type": string(*filter.SourceType)})
	}

	if filter.StartDate != nil && filter.EndDate != nil {
		switch filter.DateField {
		case domain.DateFieldEvent:
			builder = builder.
				Where(squirrel.GtOrEq{"event_date": string(*filter.StartDate)}).
				Where(squirrel.LtOrEq{"event_date": string(*filter.EndDate)})
		default: // DateFieldCreated
			from := localMidnight(*filter.StartDate)
			to := localMidnight(filter.EndDate.AddDays(1))
			builder = builder.
				Where(squirrel.GtOrEq{"created_at": from}).
				Where(squirrel.Lt{"created_at": to})
		}
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListRecent returns the newest reservations across all venues, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecent - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecent - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// localMidnight converts an ISO date to midnight in the process-local zone,
// matching how CreatedDate buckets timestamps on the way out.
func localMidnight(d types.DateString) time.Time {
	t := d.Time()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var date, startTime, grade, sourceType string

	err := row.Scan(
		&res.ID,
		&res.VenueID,
		&res.VenueName,
		&date,
		&startTime,
		&res.ContentID,
		&res.CourseName,
		&res.ChildName,
		&res.GuardianName,
		&res.Email,
		&res.Phone,
		&grade,
		&sourceType,
		&res.UTMSource,
		&res.UTMMedium,
		&res.UTMCampaign,
		&res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
	}

	res.Date = types.DateString(date)
	res.StartTime = types.TimeString(startTime)
	res.Grade = domain.Grade(grade)
	res.SourceType = domain.SourceType(sourceType)
	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
	}
	return out, nil
}
