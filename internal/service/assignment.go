package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cashewtrade/marketplace/internal/events"
	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/repo"
	"github.com/cashewtrade/marketplace/internal/transport"
	"github.com/cashewtrade/marketplace/pkg/logging"
)

type AssignmentService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

// Assign creates an agent assignment for an order. Uniqueness is enforced by
// the database constraint on order_id, so a concurrent second attempt comes
// back as ErrConflict instead of a duplicate row.
func (s *AssignmentService) Assign(ctx context.Context, orderID, agentID uuid.UUID) (*models.AgentAssignment, error) {
	agent, err := s.Repo.GetProfile(ctx, agentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: agent not found", ErrNotFound)
		}
		return nil, err
	}
	if agent.Role != models.RoleAgent {
		return nil, fmt.Errorf("%w: profile is not an agent", ErrValidation)
	}
	if !agent.IsActive {
		return nil, fmt.Errorf("%w: agent is deactivated", ErrValidation)
	}

	a := &models.AgentAssignment{
		OrderID:    orderID,
		AgentID:    agentID,
		Status:     models.AssignmentAssigned,
		AssignedAt: time.Now().UTC(),
	}
	if err := s.Repo.CreateAssignment(ctx, a); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, fmt.Errorf("%w: order already has an assignment", ErrConflict)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, err
	}

	s.afterAssignmentChange(ctx, a, "agent_assigned")
	s.notifyAgent(ctx, a)
	return a, nil
}

// Transition advances the caller's assignment one step along
// assigned -> accepted -> in_progress -> completed. A nil location is
// accepted: the transition proceeds and current_location stays unchanged.
func (s *AssignmentService) Transition(ctx context.Context, assignmentID, agentID uuid.UUID, req transport.AssignmentTransitionRequest) (*models.AgentAssignment, error) {
	next, ok := models.ParseAssignmentStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}
	if req.QualityCheckResults != nil && next != models.AssignmentCompleted {
		return nil, fmt.Errorf("%w: quality check results only accompany completion", ErrValidation)
	}

	var loc *models.Location
	if req.Location != nil {
		loc = &models.Location{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}

	a, err := s.Repo.TransitionAssignment(ctx, assignmentID, agentID, next, loc, req.QualityCheckResults)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotAssignee):
			return nil, fmt.Errorf("%w: not your assignment", ErrPermission)
		case errors.Is(err, repo.ErrBadTransition):
			return nil, fmt.Errorf("%w: cannot move to %s", ErrConflict, next)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("%w: assignment not found", ErrNotFound)
		}
		return nil, err
	}

	s.afterAssignmentChange(ctx, a, "assignment_"+string(next))
	return a, nil
}

func (s *AssignmentService) AgentAssignments(ctx context.Context, agentID uuid.UUID) ([]models.AgentAssignment, error) {
	return s.Repo.ListAgentAssignments(ctx, agentID)
}

func (s *AssignmentService) notifyAgent(ctx context.Context, a *models.AgentAssignment) {
	n := &models.Notification{
		UserID:  a.AgentID,
		Title:   "New verification assignment",
		Message: "An order has been assigned to you for quality verification",
		Type:    "assignment",
		Metadata: models.JSONMap{
			"assignment_id": a.ID.String(),
			"order_id":      a.OrderID.String(),
		},
	}
	if err := s.Repo.CreateNotification(ctx, n); err != nil {
		logging.FromContext(ctx).Warn("notification_create_failed", "assignment_id", a.ID, "error", err)
	}
}

func (s *AssignmentService) afterAssignmentChange(ctx context.Context, a *models.AgentAssignment, eventType string) {
	if s.Producer == nil {
		return
	}
	event := map[string]any{
		"type":          eventType,
		"assignment_id": a.ID,
		"order_id":      a.OrderID,
		"agent_id":      a.AgentID,
		"status":        a.Status,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicAssignmentEvents, a.OrderID.String(), event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", events.TopicAssignmentEvents, "error", err)
	}
}
