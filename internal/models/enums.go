package models

// Role is the closed set of marketplace roles.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
	RoleAgent  Role = "agent"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleSeller, RoleBuyer, RoleAgent:
		return Role(s), true
	}
	return "", false
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return PaymentStatus(s), true
	}
	return "", false
}

// AgentStatus mirrors the assignment lifecycle on the order row.
type AgentStatus string

const (
	AgentUnassigned AgentStatus = "unassigned"
	AgentAssigned   AgentStatus = "assigned"
	AgentAccepted   AgentStatus = "accepted"
	AgentInProgress AgentStatus = "in_progress"
	AgentCompleted  AgentStatus = "completed"
)

// AssignmentStatus is the linear verification lifecycle of an agent
// assignment: assigned -> accepted -> in_progress -> completed.
type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentAccepted   AssignmentStatus = "accepted"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
)

func ParseAssignmentStatus(s string) (AssignmentStatus, bool) {
	switch AssignmentStatus(s) {
	case AssignmentAssigned, AssignmentAccepted, AssignmentInProgress, AssignmentCompleted:
		return AssignmentStatus(s), true
	}
	return "", false
}

// Next returns the only legal successor state. Completed is terminal.
func (s AssignmentStatus) Next() (AssignmentStatus, bool) {
	switch s {
	case AssignmentAssigned:
		return AssignmentAccepted, true
	case AssignmentAccepted:
		return AssignmentInProgress, true
	case AssignmentInProgress:
		return AssignmentCompleted, true
	}
	return "", false
}

// Predecessor returns the state a transition into s must start from.
func (s AssignmentStatus) Predecessor() (AssignmentStatus, bool) {
	switch s {
	case AssignmentAccepted:
		return AssignmentAssigned, true
	case AssignmentInProgress:
		return AssignmentAccepted, true
	case AssignmentCompleted:
		return AssignmentInProgress, true
	}
	return "", false
}

// TimestampColumn names the column stamped on first entry into s.
func (s AssignmentStatus) TimestampColumn() string {
	switch s {
	case AssignmentAccepted:
		return "accepted_at"
	case AssignmentInProgress:
		return "started_at"
	case AssignmentCompleted:
		return "completed_at"
	}
	return ""
}

func (s AssignmentStatus) AgentStatus() AgentStatus {
	return AgentStatus(s)
}
