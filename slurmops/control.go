package slurmops

import (
	"context"
)

// ServiceController is the interface both init backends implement. All
// methods delegate to the host's supervision system and block until the
// underlying command completes; the only state they touch is the host's.
//
// Mutating operations surface a *ServiceError when the init system reports
// failure. IsActive reports false with a nil error for a service that is
// simply not running; its error return is reserved for queries that could
// not be executed at all.
type ServiceController interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
	IsActive(ctx context.Context) (bool, error)
}
