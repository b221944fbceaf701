package settings

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBooking/pkg/psqlbuilder"
)

const table = "restaurant_settings"

// Repository хранилище настроек ресторана (ключ-значение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRaw возвращает все настройки как есть, без разбора
func (r *Repository) GetRaw(ctx context.Context) (domain.RawSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("key", "value").
		From(table).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRaw - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRaw - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	raw := make(domain.RawSettings)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: GetRaw - scan row: %v", ErrScanRow, err)
		}
		raw[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRaw - rows error: %v", ErrScanRow, err)
	}

	return raw, nil
}

// Upsert записывает переданные ключи, остальные не трогает
func (r *Repository) Upsert(ctx context.Context, values domain.RawSettings) error {
	if len(values) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	insert := psqlbuilder.Insert(table).Columns("key", "value")
	for _, k := range keys {
		insert = insert.Values(k, values[k])
	}

	query, args, err := insert.
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
