package httpserver

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	middleware "github.com/cashewtrade/marketplace/pkg/middleware/auth"
)

type Deps struct {
	Auth         *AuthHTTP
	Product      *ProductHTTP
	Checkout     *CheckoutHTTP
	Order        *OrderHTTP
	Assignment   *AssignmentHTTP
	Payment      *PaymentHTTP
	Profile      *ProfileHTTP
	Analytics    *AnalyticsHTTP
	Notification *NotificationHTTP
	Upload       *UploadHTTP
	JWTSecret    []byte
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = NewValidator()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.New(d.JWTSecret)

	auth := e.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)

	products := e.Group("/products")
	products.GET("", d.Product.Storefront)
	products.GET("/search", d.Product.Search)
	products.GET("/:id", d.Product.Get)

	seller := e.Group("/seller", authMW.RequireAuth, authMW.RequireRoles("seller"))
	seller.GET("/products", d.Product.SellerProducts)
	seller.POST("/products", d.Product.Create)
	seller.PATCH("/products/:id", d.Product.Patch)
	seller.DELETE("/products/:id", d.Product.Delete)
	seller.POST("/uploads", d.Upload.Upload)
	seller.GET("/orders", d.Order.SellerOrders)
	seller.PATCH("/orders/:id/status", d.Order.UpdateStatus)
	seller.GET("/payments", d.Payment.SellerPayments)
	seller.GET("/analytics", d.Analytics.SellerSales)

	buyer := e.Group("/buyer", authMW.RequireAuth, authMW.RequireRoles("buyer"))
	buyer.POST("/checkout", d.Checkout.PlaceOrder)
	buyer.GET("/orders", d.Order.BuyerOrders)

	agent := e.Group("/agent", authMW.RequireAuth, authMW.RequireRoles("agent"))
	agent.GET("/assignments", d.Assignment.MyAssignments)
	agent.PATCH("/assignments/:id", d.Assignment.Transition)

	admin := e.Group("/admin", authMW.RequireAuth, authMW.RequireRoles("admin"))
	admin.GET("/users", d.Profile.ListUsers)
	admin.POST("/users", d.Auth.CreateUser)
	admin.PATCH("/users/:id/active", d.Profile.SetActive)
	admin.GET("/agents", d.Profile.ListAgents)
	admin.GET("/orders", d.Order.AllOrders)
	admin.POST("/assignments", d.Assignment.Assign)
	admin.GET("/payments", d.Payment.AllPayments)
	admin.PATCH("/payments/:id/status", d.Payment.UpdateStatus)
	admin.GET("/analytics/revenue", d.Analytics.Revenue)

	me := e.Group("/me", authMW.RequireAuth)
	me.GET("", d.Profile.Me)
	me.GET("/orders/:id", d.Order.Get)
	me.GET("/notifications", d.Notification.List)
	me.PATCH("/notifications/:id/read", d.Notification.MarkRead)
}
