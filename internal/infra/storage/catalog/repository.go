package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtService/pkg/psqlbuilder"
)

// DBExecutor общий интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий каталога: площадки и корты.
// Каталог читается при каждом бронировании; статус модерации площадки
// меняется только через moderation service.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateFacility создает новую площадку в статусе pending
func (r *Repository) CreateFacility(ctx context.Context, facility *domain.Facility) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("facilities").
		Columns(
			"owner_id",
			"name",
			"location",
			"approval_status",
			"amenities",
		).
		Values(
			facility.OwnerID,
			facility.Name,
			facility.Location,
			facility.ApprovalStatus,
			pq.Array(facility.Amenities),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateFacility - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&facility.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateFacility - execute insert: %v", ErrExecQuery, err)
	}

	facility.CreatedAt = createdAt.Time
	facility.UpdatedAt = updatedAt.Time

	return facility, nil
}

// GetFacilityByID получает площадку по ID
func (r *Repository) GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"location",
		"approval_status",
		"amenities",
		"created_at",
		"updated_at",
	).
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetFacilityByID - build select query: %v", ErrBuildQuery, err)
	}

	var facility domain.Facility
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&facility.ID,
		&facility.OwnerID,
		&facility.Name,
		&facility.Location,
		&facility.ApprovalStatus,
		pq.Array(&facility.Amenities),
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFacilityByID - scan facility: %v", ErrScanRow, err)
	}

	facility.CreatedAt = createdAt.Time
	facility.UpdatedAt = updatedAt.Time

	return &facility, nil
}

// SetFacilityApproval обновляет статус модерации площадки.
// Простое перезаписывание статуса: уже существующие бронирования не трогаются,
// блокируются только новые.
func (r *Repository) SetFacilityApproval(ctx context.Context, id int64, status domain.ApprovalStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facilities").
		Set("approval_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetFacilityApproval - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetFacilityApproval - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetFacilityApproval - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrFacilityNotFound
	}

	return nil
}

// CreateCourt создает новый корт площадки
func (r *Repository) CreateCourt(ctx context.Context, court *domain.Court) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("courts").
		Columns(
			"facility_id",
			"sport_type",
			"open_time",
			"close_time",
			"slot_duration_minutes",
			"base_price",
			"weekend_price",
		).
		Values(
			court.FacilityID,
			court.SportType,
			court.OpenTime,
			court.CloseTime,
			court.SlotDurationMinutes,
			court.BasePrice,
			court.WeekendPrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateCourt - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&court.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateCourt - execute insert: %v", ErrExecQuery, err)
	}

	court.CreatedAt = createdAt.Time
	court.UpdatedAt = updatedAt.Time

	return court, nil
}

// GetCourtByID получает корт по ID
func (r *Repository) GetCourtByID(ctx context.Context, id int64) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(courtColumns()...).
		From("courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCourtByID - build select query: %v", ErrBuildQuery, err)
	}

	court, err := r.scanCourt(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourtByID - scan court: %v", ErrScanRow, err)
	}

	return court, nil
}

// GetCourtsByFacility получает все корты площадки
func (r *Repository) GetCourtsByFacility(ctx context.Context, facilityID int64) ([]*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(courtColumns()...).
		From("courts").
		Where(squirrel.Eq{"facility_id": facilityID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCourtsByFacility - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourtsByFacility - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	courts := make([]*domain.Court, 0)
	for rows.Next() {
		court, err := r.scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetCourtsByFacility - scan row: %v", ErrScanRow, err)
		}
		courts = append(courts, court)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetCourtsByFacility - rows error: %v", ErrScanRow, err)
	}

	return courts, nil
}

func courtColumns() []string {
	return []string{
		"id",
		"facility_id",
		"sport_type",
		"open_time",
		"close_time",
		"slot_duration_minutes",
		"base_price",
		"weekend_price",
		"created_at",
		"updated_at",
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanCourt(row rowScanner) (*domain.Court, error) {
	var court domain.Court
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&court.ID,
		&court.FacilityID,
		&court.SportType,
		&court.OpenTime,
		&court.CloseTime,
		&court.SlotDurationMinutes,
		&court.BasePrice,
		&court.WeekendPrice,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	court.CreatedAt = createdAt.Time
	court.UpdatedAt = updatedAt.Time

	return &court, nil
}
