package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/cashewtrade/marketplace/internal/models"
)

type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role" validate:"required,oneof=buyer seller"`
	FullName     string `json:"full_name"`
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role" validate:"required,oneof=admin seller buyer agent"`
	FullName     string `json:"full_name"`
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
}

type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Category      string   `json:"category" validate:"required"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	Unit          string   `json:"unit"`
	QualityGrade  string   `json:"quality_grade"`
	Origin        string   `json:"origin"`
	StockQuantity int      `json:"stock_quantity" validate:"gte=0"`
	Images        []string `json:"images"`
}

type PatchProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	Price         *float64 `json:"price"`
	Unit          *string  `json:"unit"`
	QualityGrade  *string  `json:"quality_grade"`
	Origin        *string  `json:"origin"`
	StockQuantity *int     `json:"stock_quantity"`
	IsActive      *bool    `json:"is_active"`
	Images        []string `json:"images"`
}

type CheckoutItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	Items           []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string         `json:"shipping_address"`
	BillingAddress  string         `json:"billing_address"`
	Notes           string         `json:"notes"`
}

// CheckoutResponse reports every order created by the split plus the
// aggregate 50% advance the buyer owes up front.
type CheckoutResponse struct {
	Orders        []models.Order `json:"orders"`
	TotalAmount   float64        `json:"total_amount"`
	AdvanceAmount float64        `json:"advance_amount"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type AssignAgentRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
	AgentID uuid.UUID `json:"agent_id" validate:"required"`
}

type LocationPayload struct {
	Latitude  float64 `json:"latitude" validate:"required"`
	Longitude float64 `json:"longitude" validate:"required"`
}

// AssignmentTransitionRequest advances an assignment one step. Location is
// optional: a device that cannot produce a fix still transitions.
type AssignmentTransitionRequest struct {
	Status              string           `json:"status" validate:"required"`
	Location            *LocationPayload `json:"location"`
	QualityCheckResults models.JSONMap   `json:"quality_check_results"`
}

type UpdatePaymentStatusRequest struct {
	Status        string `json:"status" validate:"required"`
	TransactionID string `json:"transaction_id"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

type RevenueReport struct {
	TotalRevenue      float64           `json:"total_revenue"`
	TotalOrders       int64             `json:"total_orders"`
	TotalUsers        int64             `json:"total_users"`
	MonthlyRevenue    []MonthlyRevenue  `json:"monthly_revenue"`
	RevenueByCategory []CategoryRevenue `json:"revenue_by_category"`
}

type ProductSales struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
	Revenue   float64   `json:"revenue"`
}

type SellerSalesReport struct {
	TotalRevenue   float64          `json:"total_revenue"`
	TotalOrders    int64            `json:"total_orders"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	MonthlyRevenue []MonthlyRevenue `json:"monthly_revenue"`
	TopProducts    []ProductSales   `json:"top_products"`
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	AccessExp    time.Time `json:"access_exp"`
	RefreshExp   time.Time `json:"refresh_exp"`
	Role         string    `json:"role"`
}
