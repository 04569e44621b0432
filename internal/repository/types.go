package repository

import "time"

// CustomerListFilter filter for listing customers
type CustomerListFilter struct {
	Page     int
	PageSize int
	Search   string // matches name, phone or address
}

// CourierListFilter filter for listing couriers
type CourierListFilter struct {
	Page        int
	PageSize    int
	Search      string // matches name or phone
	IsAvailable *bool
}

// DeliveryListFilter filter for listing deliveries
type DeliveryListFilter struct {
	Page          int
	PageSize      int
	Status        string
	CustomerID    uint
	CourierID     uint
	OrderNo       string
	DateFrom      *time.Time
	DateTo        *time.Time
	ActiveOnly    bool
	WithRelations bool
}

// UserListFilter filter for listing credential accounts
type UserListFilter struct {
	Page     int
	PageSize int
	Role     string
	Keyword  string
}
