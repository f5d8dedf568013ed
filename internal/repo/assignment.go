package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cashewtrade/marketplace/internal/models"
)

var (
	// ErrNotAssignee is returned when someone other than the assigned agent
	// tries to advance an assignment.
	ErrNotAssignee = errors.New("assignment belongs to another agent")
	// ErrBadTransition is returned when the requested status is not the
	// direct successor of the current one.
	ErrBadTransition = errors.New("invalid assignment status transition")
)

// CreateAssignment inserts the assignment and mirrors agent_id/agent_status
// onto the order in the same transaction. The unique index on order_id turns
// a concurrent double-assignment into gorm.ErrDuplicatedKey rather than a
// second row.
func (r *GormRepo) CreateAssignment(ctx context.Context, a *models.AgentAssignment) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("id = ?", a.OrderID).First(&order).Error; err != nil {
			return err
		}

		if err := tx.Create(a).Error; err != nil {
			return err
		}

		return tx.Model(&models.Order{}).
			Where("id = ?", a.OrderID).
			Updates(map[string]any{
				"agent_id":     a.AgentID,
				"agent_status": models.AgentAssigned,
			}).Error
	})
}

func (r *GormRepo) GetAssignment(ctx context.Context, id uuid.UUID) (*models.AgentAssignment, error) {
	var a models.AgentAssignment
	if err := r.DB.WithContext(ctx).
		Preload("Order").
		Preload("Order.Buyer").
		Preload("Order.Seller").
		Where("id = ?", id).
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormRepo) GetAssignmentByOrder(ctx context.Context, orderID uuid.UUID) (*models.AgentAssignment, error) {
	var a models.AgentAssignment
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormRepo) ListAgentAssignments(ctx context.Context, agentID uuid.UUID) ([]models.AgentAssignment, error) {
	var items []models.AgentAssignment
	if err := r.DB.WithContext(ctx).
		Preload("Order").
		Preload("Order.Buyer").
		Preload("Order.Seller").
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// TransitionAssignment advances an assignment exactly one step. The update
// is guarded on (id, status = predecessor), so a concurrent transition fires
// at most once and each lifecycle timestamp is written at most once. loc may
// be nil: location capture failure never blocks a transition. The order's
// agent_status mirror moves in the same transaction.
func (r *GormRepo) TransitionAssignment(
	ctx context.Context,
	id, agentID uuid.UUID,
	next models.AssignmentStatus,
	loc *models.Location,
	results models.JSONMap,
) (*models.AgentAssignment, error) {
	prev, ok := next.Predecessor()
	if !ok {
		return nil, ErrBadTransition
	}

	var out models.AgentAssignment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		updates := map[string]any{
			"status":     next,
			"updated_at": now,
		}
		if col := next.TimestampColumn(); col != "" {
			updates[col] = now
		}
		if loc != nil {
			updates["current_location"] = &models.Location{
				Latitude:  loc.Latitude,
				Longitude: loc.Longitude,
				Timestamp: now,
			}
		}
		if results != nil {
			updates["quality_check_results"] = results
		}

		res := tx.Model(&models.AgentAssignment{}).
			Where("id = ? AND agent_id = ? AND status = ?", id, agentID, prev).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			// Distinguish missing, foreign and out-of-order assignments.
			var cur models.AgentAssignment
			if err := tx.Where("id = ?", id).First(&cur).Error; err != nil {
				return err
			}
			if cur.AgentID != agentID {
				return ErrNotAssignee
			}
			return ErrBadTransition
		}

		if err := tx.Where("id = ?", id).First(&out).Error; err != nil {
			return err
		}

		return tx.Model(&models.Order{}).
			Where("id = ?", out.OrderID).
			Update("agent_status", next.AgentStatus()).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
