package domain

import "time"

// Settings is the single platform-wide configuration record.
type Settings struct {
	ID                  int32  `json:"id"`
	PlatformName        string `json:"platform_name"`
	ContactEmail        string `json:"contact_email"`
	PlatformDescription string `json:"platform_description"`
	MaintenanceMode     bool   `json:"maintenance_mode"`
	UserRegistration    bool   `json:"user_registration"`

	Timezone   string `json:"timezone"`
	DateFormat string `json:"date_format"`
	Currency   string `json:"currency"`

	NotifyNewUserRegistration bool `json:"notify_new_user_registration"`
	NotifyNewEquipmentListed  bool `json:"notify_new_equipment_listed"`
	NotifyNewRentalRequests   bool `json:"notify_new_rental_requests"`
	NotifyPlatformUpdates     bool `json:"notify_platform_updates"`

	SessionTimeoutMinutes int32 `json:"session_timeout_minutes"`

	APIKey       string `json:"api_key"`
	APIAccess    bool   `json:"api_access"`
	APIRateLimit int32  `json:"api_rate_limit"`

	UpdatedOn time.Time `json:"updated_on"`
}

// DefaultSettings returns the record created when no settings row exists yet.
func DefaultSettings() *Settings {
	return &Settings{
		PlatformName:              "MediShare",
		ContactEmail:              "support@medishare.com",
		PlatformDescription:       "Medical equipment rental platform connecting providers and patients",
		MaintenanceMode:           false,
		UserRegistration:          true,
		Timezone:                  "America/New_York",
		DateFormat:                "MM/DD/YYYY",
		Currency:                  "USD",
		NotifyNewUserRegistration: true,
		NotifyNewEquipmentListed:  true,
		NotifyNewRentalRequests:   true,
		NotifyPlatformUpdates:     false,
		SessionTimeoutMinutes:     30,
		APIAccess:                 true,
		APIRateLimit:              60,
	}
}

// SettingsPatch carries the optional fields of a settings update. Nil fields
// are left untouched by Apply. The API key is not patchable; it is rotated
// through its own operation.
type SettingsPatch struct {
	PlatformName        *string `json:"platform_name,omitempty"`
	ContactEmail        *string `json:"contact_email,omitempty"`
	PlatformDescription *string `json:"platform_description,omitempty"`
	MaintenanceMode     *bool   `json:"maintenance_mode,omitempty"`
	UserRegistration    *bool   `json:"user_registration,omitempty"`

	Timezone   *string `json:"timezone,omitempty"`
	DateFormat *string `json:"date_format,omitempty"`
	Currency   *string `json:"currency,omitempty"`

	NotifyNewUserRegistration *bool `json:"notify_new_user_registration,omitempty"`
	NotifyNewEquipmentListed  *bool `json:"notify_new_equipment_listed,omitempty"`
	NotifyNewRentalRequests   *bool `json:"notify_new_rental_requests,omitempty"`
	NotifyPlatformUpdates     *bool `json:"notify_platform_updates,omitempty"`

	SessionTimeoutMinutes *int32 `json:"session_timeout_minutes,omitempty"`

	APIAccess    *bool  `json:"api_access,omitempty"`
	APIRateLimit *int32 `json:"api_rate_limit,omitempty"`
}

func (p SettingsPatch) Apply(s *Settings) {
	if p.PlatformName != nil {
		s.PlatformName = *p.PlatformName
	}
	if p.ContactEmail != nil {
		s.ContactEmail = *p.ContactEmail
	}
	if p.PlatformDescription != nil {
		s.PlatformDescription = *p.PlatformDescription
	}
	if p.MaintenanceMode != nil {
		s.MaintenanceMode = *p.MaintenanceMode
	}
	if p.UserRegistration != nil {
		s.UserRegistration = *p.UserRegistration
	}
	if p.Timezone != nil {
		s.Timezone = *p.Timezone
	}
	if p.DateFormat != nil {
		s.DateFormat = *p.DateFormat
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.NotifyNewUserRegistration != nil {
		s.NotifyNewUserRegistration = *p.NotifyNewUserRegistration
	}
	if p.NotifyNewEquipmentListed != nil {
		s.NotifyNewEquipmentListed = *p.NotifyNewEquipmentListed
	}
	if p.NotifyNewRentalRequests != nil {
		s.NotifyNewRentalRequests = *p.NotifyNewRentalRequests
	}
	if p.NotifyPlatformUpdates != nil {
		s.NotifyPlatformUpdates = *p.NotifyPlatformUpdates
	}
	if p.SessionTimeoutMinutes != nil {
		s.SessionTimeoutMinutes = *p.SessionTimeoutMinutes
	}
	if p.APIAccess != nil {
		s.APIAccess = *p.APIAccess
	}
	if p.APIRateLimit != nil {
		s.APIRateLimit = *p.APIRateLimit
	}
}
