package repository

import "context"

// SettingsRepository is a small key/value port used for operational state such
// as the sweep checkpoint.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error) // empty string when unset
	Set(ctx context.Context, key, value string) error
}
