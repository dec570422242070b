package settings

import "context"

// Service exposes the admin-configurable check-in policy.
type Service interface {
	Get(ctx context.Context) (SettingsResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
