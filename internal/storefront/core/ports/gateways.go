package ports

import (
	"context"

	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/domain/entity"
)

// ProductGateway is the port for the Product service HTTP surface.
// Every operation is a single attempt (retry policy, if any, belongs to
// the caller) and failures are *fault.Fault values.
type ProductGateway interface {
	List(ctx context.Context) ([]entity.Product, error)
	Create(ctx context.Context, in entity.NewProduct) (*entity.Product, error)
	AttachImage(ctx context.Context, productID, filename string, payload []byte) error
	Delete(ctx context.Context, productID string) error
}

// OrderGateway is the port for the Order service HTTP surface.
// The two gateways are deliberately independent: each backend is owned by a
// different team and there is no shared operation set to abstract over.
type OrderGateway interface {
	List(ctx context.Context) ([]entity.Order, error)
	Create(ctx context.Context, items []entity.OrderItem) (*entity.Order, error)
}
