package availability

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
	"github.com/m04kA/CMP-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/CMP-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/CMP-AvailabilityService/pkg/types"
)

// Repository репозиторий профилей доступности коучей
// Профиль размазан по трём таблицам: coach_availability (настройки + версия),
// recurring_availability (еженедельные окна), date_overrides (разовые исключения)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// overrideTimeSlotJSON JSON-представление окна внутри date override
type overrideTimeSlotJSON struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// GetByCoachID собирает полный профиль доступности коуча
// Читатели никогда не видят частично обновлённый профиль: все записи идут
// одной сериализуемой транзакцией с инкрементом версии
func (r *Repository) GetByCoachID(ctx context.Context, coachID int64) (*domain.CoachAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"coach_id",
		"timezone",
		"buffer_before_minutes",
		"buffer_after_minutes",
		"buffer_between_minutes",
		"default_session_duration",
		"allowed_durations",
		"advance_booking_days",
		"last_minute_booking_hours",
		"approval_mode",
		"version",
		"created_at",
		"updated_at",
	).
		From("coach_availability").
		Where(squirrel.Eq{"coach_id": coachID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCoachID - build select query: %v", ErrBuildQuery, err)
	}

	var profile domain.CoachAvailability
	var allowedDurations pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.CoachID,
		&profile.Timezone,
		&profile.Buffers.BeforeSessionMinutes,
		&profile.Buffers.AfterSessionMinutes,
		&profile.Buffers.BetweenSessionsMinutes,
		&profile.DefaultSessionDuration,
		&allowedDurations,
		&profile.AdvanceBookingDays,
		&profile.LastMinuteBookingHours,
		&profile.ApprovalMode,
		&profile.Version,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCoachID - scan profile: %v", ErrScanRow, err)
	}

	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	profile.AllowedDurations = make([]int, len(allowedDurations))
	for i, d := range allowedDurations {
		profile.AllowedDurations[i] = int(d)
	}

	if profile.Recurring, err = r.getRecurring(ctx, coachID); err != nil {
		return nil, err
	}

	if profile.Overrides, err = r.getOverrides(ctx, coachID); err != nil {
		return nil, err
	}

	return &profile, nil
}

// Create создает профиль доступности вместе с еженедельными окнами
// Используется сервисом для сидирования дефолтного профиля при первом обращении
func (r *Repository) Create(ctx context.Context, profile *domain.CoachAvailability) (*domain.CoachAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	allowedDurations := make(pq.Int64Array, len(profile.AllowedDurations))
	for i, d := range profile.AllowedDurations {
		allowedDurations[i] = int64(d)
	}

	query, args, err := psqlbuilder.Insert("coach_availability").
		Columns(
			"coach_id",
			"timezone",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"buffer_between_minutes",
			"default_session_duration",
			"allowed_durations",
			"advance_booking_days",
			"last_minute_booking_hours",
			"approval_mode",
			"version",
		).
		Values(
			profile.CoachID,
			profile.Timezone,
			profile.Buffers.BeforeSessionMinutes,
			profile.Buffers.AfterSessionMinutes,
			profile.Buffers.BetweenSessionsMinutes,
			profile.DefaultSessionDuration,
			allowedDurations,
			profile.AdvanceBookingDays,
			profile.LastMinuteBookingHours,
			profile.ApprovalMode,
			1,
		).
		Suffix("ON CONFLICT (coach_id) DO NOTHING RETURNING version, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&profile.Version, &createdAt, &updatedAt)

	// ON CONFLICT DO NOTHING без RETURNING строки означает, что профиль уже есть
	if err == sql.ErrNoRows {
		return nil, ErrProfileAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	if err := r.insertRecurring(ctx, profile.CoachID, profile.Recurring); err != nil {
		return nil, err
	}

	return profile, nil
}

// BumpVersion атомарно инкрементирует версию профиля при совпадении ожидаемой
// Возвращает ErrVersionConflict, если профиль был изменён конкурентным писателем
// Должен вызываться первым внутри транзакции записи - строка профиля блокируется
// до конца транзакции
func (r *Repository) BumpVersion(ctx context.Context, coachID int64, expectedVersion int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("coach_availability").
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"coach_id": coachID, "version": expectedVersion}).
		Suffix("RETURNING version").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: BumpVersion - build update query: %v", ErrBuildQuery, err)
	}

	var newVersion int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&newVersion)

	if err == sql.ErrNoRows {
		// Либо профиля нет, либо версия устарела - различаем
		if _, getErr := r.GetByCoachID(ctx, coachID); getErr != nil {
			return 0, getErr
		}
		return 0, ErrVersionConflict
	}
	if err != nil {
		return 0, fmt.Errorf("%w: BumpVersion - execute update: %v", ErrExecQuery, err)
	}

	return newVersion, nil
}

// ReplaceRecurring целиком заменяет еженедельное расписание коуча
func (r *Repository) ReplaceRecurring(ctx context.Context, coachID int64, entries []domain.RecurringAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("recurring_availability").
		Where(squirrel.Eq{"coach_id": coachID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceRecurring - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceRecurring - execute delete: %v", ErrExecQuery, err)
	}

	return r.insertRecurring(ctx, coachID, entries)
}

// UpsertOverride добавляет override на дату или заменяет существующий
// На одну дату возможен только один override - последняя запись выигрывает
func (r *Repository) UpsertOverride(ctx context.Context, coachID int64, override domain.DateOverride) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var timeSlots interface{}
	if override.IsAvailable {
		slots := make([]overrideTimeSlotJSON, len(override.TimeSlots))
		for i, slot := range override.TimeSlots {
			slots[i] = overrideTimeSlotJSON{
				StartTime: slot.StartTime.String(),
				EndTime:   slot.EndTime.String(),
			}
		}
		encoded, err := json.Marshal(slots)
		if err != nil {
			return fmt.Errorf("%w: UpsertOverride - marshal time slots: %v", ErrExecQuery, err)
		}
		timeSlots = encoded
	}

	query, args, err := psqlbuilder.Insert("date_overrides").
		Columns("coach_id", "override_date", "is_available", "reason", "time_slots").
		Values(coachID, override.Date.Format(domain.DateFormat), override.IsAvailable, override.Reason, timeSlots).
		Suffix(`ON CONFLICT (coach_id, override_date) DO UPDATE
			SET is_available = EXCLUDED.is_available,
			    reason = EXCLUDED.reason,
			    time_slots = EXCLUDED.time_slots`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertOverride - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertOverride - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteOverride удаляет override на дату
func (r *Repository) DeleteOverride(ctx context.Context, coachID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("date_overrides").
		Where(squirrel.Eq{
			"coach_id":      coachID,
			"override_date": date.Format(domain.DateFormat),
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

// UpdateSettings обновляет настройки профиля (буферы, длительности, окно бронирования)
func (r *Repository) UpdateSettings(ctx context.Context, profile *domain.CoachAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	allowedDurations := make(pq.Int64Array, len(profile.AllowedDurations))
	for i, d := range profile.AllowedDurations {
		allowedDurations[i] = int64(d)
	}

	query, args, err := psqlbuilder.Update("coach_availability").
		Set("timezone", profile.Timezone).
		Set("buffer_before_minutes", profile.Buffers.BeforeSessionMinutes).
		Set("buffer_after_minutes", profile.Buffers.AfterSessionMinutes).
		Set("buffer_between_minutes", profile.Buffers.BetweenSessionsMinutes).
		Set("default_session_duration", profile.DefaultSessionDuration).
		Set("allowed_durations", allowedDurations).
		Set("advance_booking_days", profile.AdvanceBookingDays).
		Set("last_minute_booking_hours", profile.LastMinuteBookingHours).
		Set("approval_mode", profile.ApprovalMode).
		Where(squirrel.Eq{"coach_id": profile.CoachID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// Helper methods

func (r *Repository) getRecurring(ctx context.Context, coachID int64) ([]domain.RecurringAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_of_week", "start_time", "end_time", "is_active").
		From("recurring_availability").
		Where(squirrel.Eq{"coach_id": coachID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getRecurring - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getRecurring - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.RecurringAvailability, 0)

	for rows.Next() {
		var entry domain.RecurringAvailability
		if err := rows.Scan(&entry.DayOfWeek, &entry.StartTime, &entry.EndTime, &entry.IsActive); err != nil {
			return nil, fmt.Errorf("%w: getRecurring - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getRecurring - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

func (r *Repository) getOverrides(ctx context.Context, coachID int64) ([]domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("override_date", "is_available", "reason", "time_slots").
		From("date_overrides").
		Where(squirrel.Eq{"coach_id": coachID}).
		OrderBy("override_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.DateOverride, 0)

	for rows.Next() {
		var override domain.DateOverride
		var timeSlots []byte

		if err := rows.Scan(&override.Date, &override.IsAvailable, &override.Reason, &timeSlots); err != nil {
			return nil, fmt.Errorf("%w: getOverrides - scan row: %v", ErrScanRow, err)
		}

		if len(timeSlots) > 0 {
			var decoded []overrideTimeSlotJSON
			if err := json.Unmarshal(timeSlots, &decoded); err != nil {
				return nil, fmt.Errorf("%w: getOverrides - unmarshal time slots: %v", ErrScanRow, err)
			}
			override.TimeSlots = make([]domain.OverrideTimeSlot, len(decoded))
			for i, slot := range decoded {
				override.TimeSlots[i] = domain.OverrideTimeSlot{
					StartTime: types.TimeString(slot.StartTime),
					EndTime:   types.TimeString(slot.EndTime),
				}
			}
		}

		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getOverrides - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

func (r *Repository) insertRecurring(ctx context.Context, coachID int64, entries []domain.RecurringAvailability) error {
	if len(entries) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("recurring_availability").
		Columns("coach_id", "day_of_week", "start_time", "end_time", "is_active")

	for _, entry := range entries {
		insertBuilder = insertBuilder.Values(coachID, entry.DayOfWeek, entry.StartTime, entry.EndTime, entry.IsActive)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertRecurring - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertRecurring - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
