package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile doubles as the auth user: credentials, role and the business
// identity fields shown on orders and assignments.
type Profile struct {
	ID           uuid.UUID `gorm:"primaryKey"       json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"         json:"-"`
	Role         Role      `gorm:"not null;index"   json:"role"`
	IsActive     bool      `gorm:"default:true"     json:"is_active"`
	FullName     string    `json:"full_name"`
	BusinessName string    `json:"business_name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Pincode      string    `json:"pincode"`
	GSTNumber    string    `json:"gst_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Profile) TableName() string { return "profiles" }

type RefreshToken struct {
	ID        uuid.UUID `gorm:"primaryKey"        json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	JTI       string    `gorm:"uniqueIndex;not null" json:"jti"`
	UserID    uuid.UUID `gorm:"index;not null"    json:"user_id"`
	ExpiresAt int64     `gorm:"not null"          json:"expires_at"`
	Revoked   bool      `gorm:"default:false"     json:"revoked"`
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

type Product struct {
	ID            uuid.UUID  `gorm:"primaryKey"      json:"id"`
	SellerID      uuid.UUID  `gorm:"index;not null"  json:"seller_id"`
	Name          string     `gorm:"not null"        json:"name"`
	Description   string     `json:"description"`
	Category      string     `gorm:"index;not null"  json:"category"`
	Price         float64    `gorm:"not null;check:price>=0" json:"price"`
	Unit          string     `gorm:"default:kg"      json:"unit"`
	QualityGrade  string     `json:"quality_grade"`
	Origin        string     `json:"origin"`
	StockQuantity int        `gorm:"default:0;check:stock_quantity>=0" json:"stock_quantity"`
	IsActive      bool       `gorm:"default:true;index" json:"is_active"`
	Images        StringList `gorm:"type:text"       json:"images"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Seller *Profile `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Product) TableName() string { return "products" }

// Order is always single-seller: every item references a product owned by
// SellerID. Multi-seller carts are split at checkout.
type Order struct {
	ID              uuid.UUID   `gorm:"primaryKey"     json:"id"`
	OrderNumber     string      `gorm:"uniqueIndex;not null" json:"order_number"`
	BuyerID         uuid.UUID   `gorm:"index;not null" json:"buyer_id"`
	SellerID        uuid.UUID   `gorm:"index;not null" json:"seller_id"`
	TotalAmount     float64     `gorm:"not null"       json:"total_amount"`
	Status          OrderStatus `gorm:"not null;default:pending" json:"status"`
	AgentID         *uuid.UUID  `gorm:"index"          json:"agent_id"`
	AgentStatus     AgentStatus `gorm:"not null;default:unassigned" json:"agent_status"`
	ShippingAddress string      `gorm:"not null"       json:"shipping_address"`
	BillingAddress  string      `json:"billing_address"`
	Notes           string      `json:"notes"`
	DeliveryDate    *time.Time  `json:"delivery_date"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	Items  []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Buyer  *Profile    `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Seller *Profile    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots the product price at checkout. Rows are immutable.
type OrderItem struct {
	ID         uuid.UUID `gorm:"primaryKey"     json:"id"`
	OrderID    uuid.UUID `gorm:"index;not null" json:"order_id"`
	ProductID  uuid.UUID `gorm:"index;not null" json:"product_id"`
	Quantity   int       `gorm:"not null;check:quantity>0" json:"quantity"`
	UnitPrice  float64   `gorm:"not null"       json:"unit_price"`
	TotalPrice float64   `gorm:"not null"       json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (OrderItem) TableName() string { return "order_items" }

type Payment struct {
	ID            uuid.UUID     `gorm:"primaryKey"     json:"id"`
	OrderID       uuid.UUID     `gorm:"index;not null" json:"order_id"`
	Amount        float64       `gorm:"not null"       json:"amount"`
	Status        PaymentStatus `gorm:"not null;default:pending" json:"status"`
	PaymentMethod string        `gorm:"not null"       json:"payment_method"`
	TransactionID string        `json:"transaction_id"`
	PaidAt        *time.Time    `json:"paid_at"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Payment) TableName() string { return "payments" }

// AgentAssignment is one-to-one with Order; the unique index on OrderID is
// what makes concurrent double-assignment impossible.
type AgentAssignment struct {
	ID                  uuid.UUID        `gorm:"primaryKey"          json:"id"`
	OrderID             uuid.UUID        `gorm:"uniqueIndex;not null" json:"order_id"`
	AgentID             uuid.UUID        `gorm:"index;not null"      json:"agent_id"`
	Status              AssignmentStatus `gorm:"not null;default:assigned" json:"status"`
	AssignedAt          time.Time        `gorm:"not null"            json:"assigned_at"`
	AcceptedAt          *time.Time       `json:"accepted_at"`
	StartedAt           *time.Time       `json:"started_at"`
	CompletedAt         *time.Time       `json:"completed_at"`
	CurrentLocation     *Location        `gorm:"type:text"           json:"current_location"`
	QualityCheckResults JSONMap          `gorm:"type:text"           json:"quality_check_results"`
	Notes               string           `json:"notes"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`

	Order *Order   `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Agent *Profile `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
}

func (a *AgentAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (AgentAssignment) TableName() string { return "agent_assignments" }

// Transaction is the ledger row behind revenue analytics; one "sale" row is
// written when a payment completes.
type Transaction struct {
	ID              uuid.UUID  `gorm:"primaryKey"     json:"id"`
	UserID          uuid.UUID  `gorm:"index;not null" json:"user_id"`
	OrderID         *uuid.UUID `gorm:"index"          json:"order_id"`
	PaymentID       *uuid.UUID `gorm:"index"          json:"payment_id"`
	Amount          float64    `gorm:"not null"       json:"amount"`
	TransactionType string     `gorm:"index;not null" json:"transaction_type"`
	Description     string     `json:"description"`
	Metadata        JSONMap    `gorm:"type:text"      json:"metadata"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Transaction) TableName() string { return "transactions" }

type Notification struct {
	ID        uuid.UUID `gorm:"primaryKey"     json:"id"`
	UserID    uuid.UUID `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"not null"       json:"title"`
	Message   string    `gorm:"not null"       json:"message"`
	Type      string    `gorm:"default:info"   json:"type"`
	Read      bool      `gorm:"default:false"  json:"read"`
	Metadata  JSONMap   `gorm:"type:text"      json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (Notification) TableName() string { return "notifications" }

// AutoMigrate creates or updates every marketplace table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Profile{},
		&RefreshToken{},
		&Product{},
		&Order{},
		&OrderItem{},
		&Payment{},
		&AgentAssignment{},
		&Transaction{},
		&Notification{},
	)
}
