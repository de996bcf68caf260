package accesscontrol

import "context"

// AllowlistRepository stores the admin IP allow-list.
type AllowlistRepository interface {
	GetIPAllowlist(ctx context.Context) ([]string, error)
	SaveIPAllowlist(ctx context.Context, ips []string) error
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
