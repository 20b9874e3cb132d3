package interfaces

import (
	"context"

	"quotedraft/internal/domain/entities"
)

//go:generate mockgen -source=customer_directory_interface.go -destination=mocks/customer_directory_mock.go -package=mock_interfaces

// ICustomerDirectory looks existing customers up by name. Zero matches means
// "new customer"; a directory outage is treated the same way by callers, so
// implementations may return an empty slice alongside the error.
type ICustomerDirectory interface {
	SearchByName(ctx context.Context, name string) ([]entities.CustomerMatch, error)
}
