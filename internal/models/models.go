package models

import (
	"time"
)

// Admin - a staff account that can sign in to the dashboard.
// Plural on purpose: accounts are ordinary rows with a role column,
// not a hardcoded singleton.
type Admin struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string `gorm:"size:255" json:"-"`
	// Legacy plaintext column. Cleared the first time the owner logs in;
	// only kept so old installs keep working until that happens.
	Password  *string   `gorm:"size:255" json:"-"`
	Role      string    `gorm:"size:20;default:admin" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the singular table name so existing installs
// migrate in place.
func (Admin) TableName() string {
	return "admin"
}

// Customer - the person the shop stitches for.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Order - one garment job. Date columns are stored as plain YYYY-MM-DD
// strings (DATE in MySQL) so filter comparisons stay lexical.
// The due amount is derived on every read, never stored.
type Order struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CustomerID   uint      `gorm:"index" json:"customer_id"`
	DressType    string    `gorm:"size:100" json:"dress_type"`
	Price        float64   `gorm:"type:decimal(10,2)" json:"price"`
	PaidAmount   float64   `gorm:"type:decimal(10,2);default:0" json:"paid_amount"`
	TrialDate    string    `gorm:"type:date" json:"trial_date"`
	DeliveryDate string    `gorm:"type:date" json:"delivery_date"`
	Status       string    `gorm:"size:30;default:Pending" json:"status"`
	PaymentMode  string    `gorm:"size:30" json:"payment_mode"`
	PaymentDate  string    `gorm:"type:date" json:"payment_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// DueAmount returns price minus paid, floored at zero.
func (o Order) DueAmount() float64 {
	due := o.Price - o.PaidAmount
	if due < 0 {
		return 0
	}
	return due
}

// OrderWithCustomer is the read shape for /orders and billing: the raw
// order plus the joined customer identity and the computed due amount.
type OrderWithCustomer struct {
	Order
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	Due           float64 `gorm:"-" json:"due_amount"`
}

// Measurement - one set of body measurements for a customer.
type Measurement struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"index" json:"customer_id"`
	Chest      float64   `json:"chest"`
	Waist      float64   `json:"waist"`
	Shoulder   float64   `json:"shoulder"`
	Length     float64   `json:"length"`
	CreatedAt  time.Time `json:"created_at"`
}

// BillingSettings - shop identity and tax configuration used when
// rendering invoices. Persisted as a single row so the branding
// survives browser data clears and follows the shop across devices.
// LogoURL and LogoData are mutually exclusive: saving one clears the other.
type BillingSettings struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ShopName      string    `gorm:"size:100" json:"shop_name"`
	ShopAddress   string    `json:"shop_address"`
	ShopPhone     string    `gorm:"size:20" json:"shop_phone"`
	ShopGSTIN     string    `gorm:"size:20" json:"shop_gstin"`
	InvoicePrefix string    `gorm:"size:10" json:"invoice_prefix"`
	LogoURL       string    `json:"logo_url"`
	LogoData      string    `gorm:"type:mediumtext" json:"logo_data"`
	ApplyTax      bool      `json:"apply_tax"`
	TaxPercent    float64   `gorm:"type:decimal(5,2)" json:"tax_percent"`
	UpdatedAt     time.Time `json:"updated_at"`
}
