package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cashewtrade/marketplace/internal/events"
	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/repo"
	"github.com/cashewtrade/marketplace/internal/service/cart"
	"github.com/cashewtrade/marketplace/internal/transport"
	"github.com/cashewtrade/marketplace/pkg/logging"
)

// AdvanceShare is the fraction of an order collected before agent
// verification; the remainder is due after.
const AdvanceShare = 0.5

type CheckoutService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

// PlaceOrder turns one cart into one order per distinct seller, each with
// its item snapshots and an advance payment record. The whole split commits
// in a single transaction: a failure in any seller group leaves nothing
// behind.
func (s *CheckoutService) PlaceOrder(ctx context.Context, buyerID uuid.UUID, req transport.CheckoutRequest) (*transport.CheckoutResponse, error) {
	shipping := strings.TrimSpace(req.ShippingAddress)
	if shipping == "" {
		return nil, fmt.Errorf("%w: shipping address required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	ct := cart.New()
	for _, item := range req.Items {
		if item.ProductID == uuid.Nil {
			return nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		ct.Add(item.ProductID, item.Quantity)
	}

	catalog, err := s.Repo.GetProductsByIDs(ctx, ct.ProductIDs())
	if err != nil {
		return nil, err
	}

	// Unknown or deactivated products drop out of the cart here.
	lines := ct.Resolve(catalog)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no purchasable items in cart", ErrValidation)
	}

	billing := strings.TrimSpace(req.BillingAddress)
	if billing == "" {
		billing = shipping
	}

	groups := splitBySeller(lines)
	now := time.Now().UTC()

	orders := make([]*models.Order, 0, len(groups))
	payments := make([]*models.Payment, 0, len(groups))
	var grandTotal float64

	for _, group := range groups {
		var subtotal float64
		items := make([]models.OrderItem, 0, len(group.lines))
		for _, line := range group.lines {
			lineTotal := models.Round2(line.Product.Price * float64(line.Quantity))
			items = append(items, models.OrderItem{
				ProductID:  line.Product.ID,
				Quantity:   line.Quantity,
				UnitPrice:  line.Product.Price,
				TotalPrice: lineTotal,
			})
			subtotal += lineTotal
		}
		subtotal = models.Round2(subtotal)
		grandTotal += subtotal

		orders = append(orders, &models.Order{
			OrderNumber:     repo.NewOrderNumber(now),
			BuyerID:         buyerID,
			SellerID:        group.sellerID,
			TotalAmount:     subtotal,
			Status:          models.OrderPending,
			AgentStatus:     models.AgentUnassigned,
			ShippingAddress: shipping,
			BillingAddress:  billing,
			Notes:           req.Notes,
			Items:           items,
		})
		payments = append(payments, &models.Payment{
			Amount:        models.Round2(subtotal * AdvanceShare),
			Status:        models.PaymentPending,
			PaymentMethod: "advance_payment",
		})
	}

	if err := s.Repo.PlaceOrders(ctx, orders, payments); err != nil {
		return nil, err
	}

	s.afterCheckout(ctx, buyerID, orders)

	grandTotal = models.Round2(grandTotal)
	resp := &transport.CheckoutResponse{
		TotalAmount:   grandTotal,
		AdvanceAmount: models.Round2(grandTotal * AdvanceShare),
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, *o)
	}
	return resp, nil
}

type sellerGroup struct {
	sellerID uuid.UUID
	lines    []cart.Line
}

// splitBySeller partitions resolved lines by product owner. Groups come out
// in a stable order so order numbers and tests are deterministic.
func splitBySeller(lines []cart.Line) []sellerGroup {
	bySeller := make(map[uuid.UUID][]cart.Line)
	for _, line := range lines {
		bySeller[line.Product.SellerID] = append(bySeller[line.Product.SellerID], line)
	}

	groups := make([]sellerGroup, 0, len(bySeller))
	for sellerID, ls := range bySeller {
		groups = append(groups, sellerGroup{sellerID: sellerID, lines: ls})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].sellerID.String() < groups[j].sellerID.String()
	})
	return groups
}

// afterCheckout fires the post-commit side effects: a notification per
// seller and an order event per order. Failures are logged, never surfaced.
func (s *CheckoutService) afterCheckout(ctx context.Context, buyerID uuid.UUID, orders []*models.Order) {
	l := logging.FromContext(ctx)

	for _, order := range orders {
		n := &models.Notification{
			UserID:  order.SellerID,
			Title:   "New order received",
			Message: fmt.Sprintf("Order %s worth %.2f is awaiting confirmation", order.OrderNumber, order.TotalAmount),
			Type:    "order",
			Metadata: models.JSONMap{
				"order_id": order.ID.String(),
			},
		}
		if err := s.Repo.CreateNotification(ctx, n); err != nil {
			l.Warn("notification_create_failed", "order_id", order.ID, "error", err)
		}

		if s.Producer != nil {
			event := map[string]any{
				"type":         "order_placed",
				"order_id":     order.ID,
				"order_number": order.OrderNumber,
				"buyer_id":     buyerID,
				"seller_id":    order.SellerID,
				"total_amount": order.TotalAmount,
			}
			if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, order.ID.String(), event); err != nil {
				l.Warn("event_publish_failed", "topic", events.TopicOrderEvents, "error", err)
			}
		}
	}
}
