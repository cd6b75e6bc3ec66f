package barber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/barber-booking-backend/internal/availability"
)

type Repository interface {
	Create(ctx context.Context, b *Barber) error
	GetByID(ctx context.Context, id string) (*Barber, error)
	List(ctx context.Context, filter Filter) ([]*Barber, int, error)
	Update(ctx context.Context, b *Barber) error
	UpdateAvatar(ctx context.Context, id string, avatarPath, thumbnailPath *string) error
	Delete(ctx context.Context, id string) error

	CreateService(ctx context.Context, s *Service) error
	UpdateService(ctx context.Context, s *Service) error
	DeleteService(ctx context.Context, barberID, serviceID string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var barberColumns = []string{
	"b.id", "b.name", "b.avatar_path", "b.thumbnail_path", "b.weekly_schedule", "b.created_at", "b.updated_at",
}

func encodeSchedule(s availability.WeeklySchedule) (json.RawMessage, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode weekly schedule failed: %w", err)
	}
	return data, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Barber) error {
	schedule, err := encodeSchedule(b.Schedule)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create barber failed: %w", err)
	}
	defer tx.Rollback(ctx)

	query, args, err := psql.Insert("public.barbers").
		Columns("name", "weekly_schedule").
		Values(b.Name, schedule).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create barber query failed: %w", err)
	}
	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create barber failed: %w", err)
	}

	for i := range b.Services {
		s := &b.Services[i]
		s.BarberID = b.ID
		s.Position = i
		query, args, err := psql.Insert("public.barber_services").
			Columns("barber_id", "name", "duration_minutes", "price_cents", "position").
			Values(s.BarberID, s.Name, s.DurationMinutes, s.PriceCents, s.Position).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create service query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&s.ID); err != nil {
			return mapServiceError(err, "create service failed")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create barber failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Barber, error) {
	query, args, err := psql.Select(barberColumns...).
		From("public.barbers b").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get barber query failed: %w", err)
	}

	b, err := scanBarber(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get barber failed: %w", err)
	}

	if err := r.attachServices(ctx, []*Barber{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Barber, int, error) {
	query := psql.Select(append(barberColumns, "count(*) OVER() AS total_count")...).
		From("public.barbers b")

	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		query = query.Where(squirrel.ILike{"b.name": "%" + kw + "%"})
	}

	orderDir := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		orderDir = "DESC"
	}
	query = query.OrderBy("b.name "+orderDir, "b.id")

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
		return nil, 0, fmt.Errorf("build list barbers query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list barbers failed: %w", err)
	}
	defer rows.Close()

	var barbers []*Barber
	var total int
	for rows.Next() {
		var b Barber
		var schedule []byte
		if err := rows.Scan(
			&b.ID, &b.Name, &b.AvatarPath, &b.ThumbnailPath, &schedule, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan barber failed: %w", err)
		}
		if err := json.Unmarshal(schedule, &b.Schedule); err != nil {
			return nil, 0, fmt.Errorf("decode schedule of barber %s failed: %w", b.ID, err)
		}
		barbers = append(barbers, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate barbers failed: %w", err)
	}

	if err := r.attachServices(ctx, barbers); err != nil {
		return nil, 0, err
	}
	return barbers, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Barber) error {
	schedule, err := encodeSchedule(b.Schedule)
	if err != nil {
		return err
	}

	query, args, err := psql.Update("public.barbers").
		Set("name", b.Name).
		Set("weekly_schedule", schedule).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update barber query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update barber failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpdateAvatar(ctx context.Context, id string, avatarPath, thumbnailPath *string) error {
	query, args, err := psql.Update("public.barbers").
		Set("avatar_path", avatarPath).
		Set("thumbnail_path", thumbnailPath).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update avatar query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update avatar failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.barbers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete barber query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete barber failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CreateService(ctx context.Context, s *Service) error {
	nextPosition := squirrel.Expr(
		"(SELECT COALESCE(MAX(position) + 1, 0) FROM public.barber_services WHERE barber_id = ?)", s.BarberID,
	)
	query, args, err := psql.Insert("public.barber_services").
		Columns("barber_id", "name", "duration_minutes", "price_cents", "position").
		Values(s.BarberID, s.Name, s.DurationMinutes, s.PriceCents, nextPosition).
		Suffix("RETURNING id, position").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create service query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.Position); err != nil {
		return mapServiceError(err, "create service failed")
	}
	return nil
}

func (r *pgxRepository) UpdateService(ctx context.Context, s *Service) error {
	query, args, err := psql.Update("public.barber_services").
		Set("name", s.Name).
		Set("duration_minutes", s.DurationMinutes).
		Set("price_cents", s.PriceCents).
		Where(squirrel.Eq{"id": s.ID, "barber_id": s.BarberID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update service query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapServiceError(err, "update service failed")
	}
	if ct.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteService(ctx context.Context, barberID, serviceID string) error {
	query, args, err := psql.Delete("public.barber_services").
		Where(squirrel.Eq{"id": serviceID, "barber_id": barberID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete service query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapServiceError(err, "delete service failed")
	}
	if ct.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// attachServices loads the services of all given barbers in one query, ordered by position.
func (r *pgxRepository) attachServices(ctx context.Context, barbers []*Barber) error {
	if len(barbers) == 0 {
		return nil
	}

	byID := make(map[string]*Barber, len(barbers))
	ids := make([]string, 0, len(barbers))
	for _, b := range barbers {
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	query, args, err := psql.Select("id", "barber_id", "name", "duration_minutes", "price_cents", "position").
		From("public.barber_services").
		Where(squirrel.Eq{"barber_id": ids}).
		OrderBy("barber_id", "position", "created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build list services query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list services failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.BarberID, &s.Name, &s.DurationMinutes, &s.PriceCents, &s.Position); err != nil {
			return fmt.Errorf("scan service failed: %w", err)
		}
		if b, ok := byID[s.BarberID]; ok {
			b.Services = append(b.Services, s)
		}
	}
	return rows.Err()
}

func scanBarber(row pgx.Row) (*Barber, error) {
	var b Barber
	var schedule []byte
	if err := row.Scan(&b.ID, &b.Name, &b.AvatarPath, &b.ThumbnailPath, &schedule, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(schedule, &b.Schedule); err != nil {
		return nil, fmt.Errorf("decode schedule of barber %s failed: %w", b.ID, err)
	}
	return &b, nil
}

func mapServiceError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrDuplicateService.WithErr(err)
		case pgerrcode.ForeignKeyViolation:
			if pgErr.ConstraintName == "barber_services_barber_id_fkey" {
				return ErrNotFound.WithErr(err)
			}
			return ErrServiceInUse.WithErr(err)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
