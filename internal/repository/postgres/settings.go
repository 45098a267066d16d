package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `id, platform_name, contact_email, platform_description, maintenance_mode, user_registration,
	timezone, date_format, currency,
	notify_new_user_registration, notify_new_equipment_listed, notify_new_rental_requests, notify_platform_updates,
	session_timeout_minutes, COALESCE(api_key, ''), api_access, api_rate_limit, updated_on`

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	s := &domain.Settings{}
	query := `SELECT ` + settingsColumns + ` FROM settings LIMIT 1`
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.ID, &s.PlatformName, &s.ContactEmail, &s.PlatformDescription, &s.MaintenanceMode, &s.UserRegistration,
		&s.Timezone, &s.DateFormat, &s.Currency,
		&s.NotifyNewUserRegistration, &s.NotifyNewEquipmentListed, &s.NotifyNewRentalRequests, &s.NotifyPlatformUpdates,
		&s.SessionTimeoutMinutes, &s.APIKey, &s.APIAccess, &s.APIRateLimit, &s.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return r.createDefaults(ctx)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *settingsRepository) createDefaults(ctx context.Context) (*domain.Settings, error) {
	s := domain.DefaultSettings()
	query := `INSERT INTO settings (platform_name, contact_email, platform_description, maintenance_mode, user_registration,
	            timezone, date_format, currency,
	            notify_new_user_registration, notify_new_equipment_listed, notify_new_rental_requests, notify_platform_updates,
	            session_timeout_minutes, api_key, api_access, api_rate_limit, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		s.PlatformName, s.ContactEmail, s.PlatformDescription, s.MaintenanceMode, s.UserRegistration,
		s.Timezone, s.DateFormat, s.Currency,
		s.NotifyNewUserRegistration, s.NotifyNewEquipmentListed, s.NotifyNewRentalRequests, s.NotifyPlatformUpdates,
		s.SessionTimeoutMinutes, s.APIKey, s.APIAccess, s.APIRateLimit, now).Scan(&s.ID)
	if err != nil {
		return nil, err
	}
	s.UpdatedOn = now
	return s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *domain.Settings) error {
	query := `UPDATE settings SET platform_name=$1, contact_email=$2, platform_description=$3, maintenance_mode=$4, user_registration=$5,
	            timezone=$6, date_format=$7, currency=$8,
	            notify_new_user_registration=$9, notify_new_equipment_listed=$10, notify_new_rental_requests=$11, notify_platform_updates=$12,
	            session_timeout_minutes=$13, api_key=$14, api_access=$15, api_rate_limit=$16, updated_on=$17
	          WHERE id=$18`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		s.PlatformName, s.ContactEmail, s.PlatformDescription, s.MaintenanceMode, s.UserRegistration,
		s.Timezone, s.DateFormat, s.Currency,
		s.NotifyNewUserRegistration, s.NotifyNewEquipmentListed, s.NotifyNewRentalRequests, s.NotifyPlatformUpdates,
		s.SessionTimeoutMinutes, s.APIKey, s.APIAccess, s.APIRateLimit, now, s.ID)
	if err == nil {
		s.UpdatedOn = now
	}
	return err
}
