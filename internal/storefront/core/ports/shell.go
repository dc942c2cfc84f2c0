package ports

import "github.com/jcmexdev/storefront-aggregator/internal/storefront/core/domain/entity"

// Severity of a transient notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Shell is the narrow presentation surface the coordinator renders into.
// The real shell (markup, styling, form parsing) lives outside this
// module; an implementation only has to display what it is handed.
// Input reading goes the other way: the adapter that owns the shell parses
// forms and files and passes typed values into the workflows.
type Shell interface {
	RenderProductList(products []entity.Product)

	// RenderProductListPlaceholder replaces the product list with a
	// loading or error message.
	RenderProductListPlaceholder(message string)

	RenderOrderList(orders []entity.Order)
	RenderOrderListPlaceholder(message string)

	RenderCart(items []entity.CartItem, total float64)

	// Notify displays a transient notification. Only the most recent one
	// is visible; the shell owns the visibility window.
	Notify(message string, severity Severity)

	// ResetProductForm clears the create-product input surface after a
	// successful submission.
	ResetProductForm()
}
