package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusCreated   = "created"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
)

// Order represents a row in the orders table
type Order struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"-"`
	CreatedAt    time.Time       `json:"createdAt"`
	FullName     string          `json:"fullName"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	DeliveryType string          `json:"deliveryType"`
	PaymentType  string          `json:"paymentType"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	Status       string          `json:"status"`
	City         string          `json:"city"`
	Address      string          `json:"address"`
	PaymentData  []byte          `json:"-"`
	PaymentError bool            `json:"-"`
}

// OrderSummary is the list view of GET /api/orders.
type OrderSummary struct {
	ID           int64           `json:"id"`
	CreatedAt    time.Time       `json:"createdAt"`
	DeliveryType string          `json:"deliveryType"`
	PaymentType  string          `json:"paymentType"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	Status       string          `json:"status"`
}

// OrderEntry is an order_products row joined with its product.
type OrderEntry struct {
	Product Product
	Count   int
}

// OrderLine is a product line in the order detail view; Count is the
// quantity snapshot stored in order_products, not anything client-supplied.
type OrderLine struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Count       int             `json:"count"`
	Images      []Image         `json:"images"`
}

// OrderDetail is the response of GET /api/order/:id.
type OrderDetail struct {
	Order
	Products []OrderLine `json:"products"`
}

// LineItem is a (product, unit price, quantity) tuple supplied by the client
// when creating or confirming an order.
type LineItem struct {
	ID    int64           `json:"id"`
	Price decimal.Decimal `json:"price"`
	Count int             `json:"count"`
}

// Total returns Σ price×count over the given line items.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Count))))
	}
	return total
}

// ContactPatch is the partial update applied at order confirmation. Nil
// fields are left untouched.
type ContactPatch struct {
	FullName     *string `json:"fullName"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	DeliveryType *string `json:"deliveryType"`
	PaymentType  *string `json:"paymentType"`
	City         *string `json:"city"`
	Address      *string `json:"address"`
}

// Apply merges the present fields of the patch into the order.
func (p ContactPatch) Apply(o *Order) {
	if p.FullName != nil {
		o.FullName = *p.FullName
	}
	if p.Email != nil {
		o.Email = *p.Email
	}
	if p.Phone != nil {
		o.Phone = *p.Phone
	}
	if p.DeliveryType != nil {
		o.DeliveryType = *p.DeliveryType
	}
	if p.PaymentType != nil {
		o.PaymentType = *p.PaymentType
	}
	if p.City != nil {
		o.City = *p.City
	}
	if p.Address != nil {
		o.Address = *p.Address
	}
}
