package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/transport"
)

func TestAssignAgent(t *testing.T) {
	r := newTestRepo(t)
	checkout := &CheckoutService{Repo: r}
	svc := &AssignmentService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	agent := newProfile(t, r, models.RoleAgent)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 80)

	res, err := checkout.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: prod.ID, Quantity: 1}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)
	orderID := res.Orders[0].ID

	a, err := svc.Assign(ctx, orderID, agent.ID)
	require.NoError(t, err)
	require.Equal(t, models.AssignmentAssigned, a.Status)
	require.False(t, a.AssignedAt.IsZero())

	// The order mirrors the assignment.
	order, err := r.GetOrder(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, order.AgentID)
	require.Equal(t, agent.ID, *order.AgentID)
	require.Equal(t, models.AgentAssigned, order.AgentStatus)

	// The agent gets notified.
	notes, err := r.ListNotifications(ctx, agent.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "assignment", notes[0].Type)
}

func TestAssignAgentTwiceConflicts(t *testing.T) {
	r := newTestRepo(t)
	checkout := &CheckoutService{Repo: r}
	svc := &AssignmentService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	agentA := newProfile(t, r, models.RoleAgent)
	agentB := newProfile(t, r, models.RoleAgent)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 80)

	res, err := checkout.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: prod.ID, Quantity: 1}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)
	orderID := res.Orders[0].ID

	_, err = svc.Assign(ctx, orderID, agentA.ID)
	require.NoError(t, err)

	_, err = svc.Assign(ctx, orderID, agentB.ID)
	require.ErrorIs(t, err, ErrConflict)

	// The first assignment stays intact.
	a, err := r.GetAssignmentByOrder(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, agentA.ID, a.AgentID)
}

func TestAssignRejectsNonAgents(t *testing.T) {
	r := newTestRepo(t)
	checkout := &CheckoutService{Repo: r}
	svc := &AssignmentService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 80)

	res, err := checkout.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: prod.ID, Quantity: 1}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)

	_, err = svc.Assign(ctx, res.Orders[0].ID, seller.ID)
	require.ErrorIs(t, err, ErrValidation)
}

func TestTransitionHappyPath(t *testing.T) {
	r := newTestRepo(t)
	checkout := &CheckoutService{Repo: r}
	svc := &AssignmentService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	agent := newProfile(t, r, models.RoleAgent)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 80)

	res, err := checkout.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: prod.ID, Quantity: 1}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)
	orderID := res.Orders[0].ID

	a, err := svc.Assign(ctx, orderID, agent.ID)
	require.NoError(t, err)

	a, err = svc.Transition(ctx, a.ID, agent.ID, transport.AssignmentTransitionRequest{
		Status:   "accepted",
		Location: &transport.LocationPayload{Latitude: 9.93, Longitude: 76.26},
	})
	require.NoError(t, err)
	require.Equal(t, models.AssignmentAccepted, a.Status)
	require.NotNil(t, a.AcceptedAt)
	require.NotNil(t, a.CurrentLocation)
	require.Equal(t, 9.93, a.CurrentLocation.Latitude)
	require.False(t, a.CurrentLocation.Timestamp.IsZero())

	// No location fix: the transition still goes through.
	a, err = svc.Transition(ctx, a.ID, agent.ID, transport.AssignmentTransitionRequest{Status: "in_progress"})
	require.NoError(t, err)
	require.Equal(t, models.AssignmentInProgress, a.Status)
	require.NotNil(t, a.StartedAt)
	require.NotNil(t, a.CurrentLocation)

	a, err = svc.Transition(ctx, a.ID, agent.ID, transport.AssignmentTransitionRequest{
		Status:              "completed",
		QualityCheckResults: models.JSONMap{"moisture": "4.8%", "grade": "W320"},
	})
	require.NoError(t, err)
	require.Equal(t, models.AssignmentCompleted, a.Status)
	require.NotNil(t, a.CompletedAt)
	require.Equal(t, "W320", a.QualityCheckResults["grade"])

	order, err := r.GetOrder(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, models.AgentCompleted, order.AgentStatus)
}

func TestTransitionCannotSkipSteps(t *testing.T) {
	r := newTestRepo(t)
	checkout := &CheckoutService{Repo: r}
	svc := &AssignmentService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	agent := newProfile(t, r, models.RoleAgent)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 80)

	res, err := checkout.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: prod.ID, Quantity: 1}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)

	a, err := svc.Assign(ctx, res.Orders[0].ID, agent.ID)
	require.NoError(t, err)

	// assigned -> in_progress skips accepted.
	_, err = svc.Transition(ctx, a.ID, agent.ID, transport.AssignmentTransitionRequest{Status: "in_progress"})
	require.ErrorIs(t, err, ErrConflict)

	// Regressions are rejected too.
	_, err = svc.Transition(ctx, a.ID, agent.ID, transport.AssignmentTransitionRequest{Status: "assigned"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestTransitionWrongAgent(t *testing.T) {
	r := newTestRepo(t)
	checkout := &CheckoutService{Repo: r}
	svc := &AssignmentService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	agent := newProfile(t, r, models.RoleAgent)
	other := newProfile(t, r, models.RoleAgent)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 80)

	res, err := checkout.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: prod.ID, Quantity: 1}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)

	a, err := svc.Assign(ctx, res.Orders[0].ID, agent.ID)
	require.NoError(t, err)

	_, err = svc.Transition(ctx, a.ID, other.ID, transport.AssignmentTransitionRequest{Status: "accepted"})
	require.ErrorIs(t, err, ErrPermission)
}

func TestTransitionQualityResultsOnlyOnCompletion(t *testing.T) {
	r := newTestRepo(t)
	checkout := &CheckoutService{Repo: r}
	svc := &AssignmentService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	agent := newProfile(t, r, models.RoleAgent)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 80)

	res, err := checkout.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: prod.ID, Quantity: 1}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)

	a, err := svc.Assign(ctx, res.Orders[0].ID, agent.ID)
	require.NoError(t, err)

	_, err = svc.Transition(ctx, a.ID, agent.ID, transport.AssignmentTransitionRequest{
		Status:              "accepted",
		QualityCheckResults: models.JSONMap{"grade": "W320"},
	})
	require.ErrorIs(t, err, ErrValidation)
}
