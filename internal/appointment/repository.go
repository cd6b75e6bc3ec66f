package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create relies on the appointments_no_overlap constraint to reject double bookings.
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, filter Filter) ([]*Appointment, int, error)
	// ListForBarberBetween returns the barber's appointments starting in [from, to).
	ListForBarberBetween(ctx context.Context, barberID string, from, to time.Time) ([]*Appointment, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectAppointments(extra ...string) squirrel.SelectBuilder {
	cols := append([]string{
		"a.id", "a.barber_id", "b.name", "a.service_id", "s.name",
		"a.customer_number", "a.customer_name", "a.start_time", "a.end_time", "a.created_at",
	}, extra...)
	return psql.Select(cols...).
		From("public.appointments a").
		Join("public.barbers b ON a.barber_id = b.id").
		Join("public.barber_services s ON a.service_id = s.id")
}

func scanAppointment(row pgx.Row, extra ...any) (*Appointment, error) {
	var a Appointment
	dest := append([]any{
		&a.ID, &a.BarberID, &a.BarberName, &a.ServiceID, &a.ServiceName,
		&a.CustomerNumber, &a.CustomerName, &a.StartTime, &a.EndTime, &a.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *pgxRepository) Create(ctx context.Context, a *Appointment) error {
	query, args, err := psql.Insert("public.appointments").
		Columns("barber_id", "service_id", "customer_number", "customer_name", "start_time", "end_time").
		Values(a.BarberID, a.ServiceID, a.CustomerNumber, a.CustomerName, a.StartTime, a.EndTime).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create appointment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.ExclusionViolation:
				return ErrTimeConflict.WithErr(err)
			case pgerrcode.ForeignKeyViolation, pgerrcode.CheckViolation:
				return ErrInvalidInput.WithErr(err)
			}
		}
		return fmt.Errorf("create appointment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	query, args, err := selectAppointments().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get appointment query failed: %w", err)
	}

	a, err := scanAppointment(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Appointment, int, error) {
	query := selectAppointments("count(*) OVER() AS total_count")

	if filter.CustomerNumber != "" {
		query = query.Where(squirrel.Eq{"a.customer_number": filter.CustomerNumber})
	}
	if filter.BarberID != "" {
		query = query.Where(squirrel.Eq{"a.barber_id": filter.BarberID})
	}
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"a.start_time": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.Lt{"a.start_time": *filter.To})
	}

	orderDir := "ASC"
	if filter.SortOrder == "DESC" {
		orderDir = "DESC"
	}
	query = query.OrderBy("a.start_time " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list appointments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments failed: %w", err)
	}
	defer rows.Close()

	appointments := []*Appointment{}
	var total int
	for rows.Next() {
		a, err := scanAppointment(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan appointment failed: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate appointments failed: %w", err)
	}

	return appointments, total, nil
}

func (r *pgxRepository) ListForBarberBetween(ctx context.Context, barberID string, from, to time.Time) ([]*Appointment, error) {
	query, args, err := selectAppointments().
		Where(squirrel.Eq{"a.barber_id": barberID}).
		Where(squirrel.GtOrEq{"a.start_time": from}).
		Where(squirrel.Lt{"a.start_time": to}).
		OrderBy("a.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list barber appointments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list barber appointments failed: %w", err)
	}
	defer rows.Close()

	var appointments []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment failed: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete appointment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete appointment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
