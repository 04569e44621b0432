package constants

// Delivery status constants
const (
	DeliveryStatusPending    = "pending"
	DeliveryStatusOnDelivery = "on_delivery"
	DeliveryStatusCompleted  = "completed"
)

// User role constants
const (
	RoleAdmin   = "admin"
	RoleCourier = "courier"
)

// Message template type constants
const (
	TemplateAdminToCustomer   = "admin_to_customer"
	TemplateAdminToCourier    = "admin_to_courier"
	TemplateCourierToCustomer = "courier_to_customer"
)

// Pagination constants
const (
	// PageSizeAll disables paging and returns every match without
	// pagination metadata.
	PageSizeAll = -1

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Queue constants
const (
	QueueDefault = "default"

	TaskDeliveryStatusNotify = "delivery:status_notify"
)

// Report constants
const (
	// ReportNoData is the top-courier sentinel when the window holds no
	// deliveries.
	ReportNoData = "no data"
)

// ActiveDeliveryStatuses returns the statuses counted as in-flight for the
// one-active-delivery-per-customer guard.
func ActiveDeliveryStatuses() []string {
	return []string{DeliveryStatusPending, DeliveryStatusOnDelivery}
}

// IsValidDeliveryStatus reports whether s is a known delivery status.
func IsValidDeliveryStatus(s string) bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusOnDelivery, DeliveryStatusCompleted:
		return true
	}
	return false
}
