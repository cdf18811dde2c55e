package models

import "time"

const RequestTable = "lab_borrow_requests"

// DefaultLoanPeriod is applied when a request is submitted without a due date.
const DefaultLoanPeriod = 7 * 24 * time.Hour

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
	StatusReturned RequestStatus = "returned"
)

type RequestAction string

const (
	ActionApprove RequestAction = "approve"
	ActionReject  RequestAction = "reject"
	ActionReturn  RequestAction = "return"
)

// transitions is the authoritative state machine: each action is legal from
// exactly one source state. rejected and returned are terminal.
var transitions = map[RequestAction]struct {
	From RequestStatus
	To   RequestStatus
}{
	ActionApprove: {From: StatusPending, To: StatusApproved},
	ActionReject:  {From: StatusPending, To: StatusRejected},
	ActionReturn:  {From: StatusApproved, To: StatusReturned},
}

// NextStatus returns the target status for applying action to current,
// or false if the transition is illegal.
func NextStatus(current RequestStatus, action RequestAction) (RequestStatus, bool) {
	t, ok := transitions[action]
	if !ok || t.From != current {
		return current, false
	}
	return t.To, true
}

// BorrowRequest is one user's borrow transaction against one item.
// Submission never reserves stock; the ledger is only touched on approval
// and return, atomically with the status change.
type BorrowRequest struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;index;not null" json:"userId"`
	ItemID string `gorm:"type:uuid;index;not null" json:"itemId"`

	Status   RequestStatus `gorm:"size:20;index;not null;default:'pending'" json:"status"`
	Quantity int           `gorm:"not null;default:1" json:"quantity"`
	DueDate  time.Time     `gorm:"not null" json:"dueDate"`

	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
	ReviewedBy *string    `gorm:"type:uuid" json:"reviewedBy,omitempty"`
	ReturnedAt *time.Time `gorm:"index" json:"returnedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Populated on reads when the item still exists; historical requests may
	// reference a deleted item.
	Item *Item `gorm:"foreignKey:ItemID;references:ID" json:"item,omitempty"`
}

func (BorrowRequest) TableName() string { return RequestTable }

// Active reports whether the request currently holds reserved stock.
func (r *BorrowRequest) Active() bool {
	return r.Status == StatusApproved && r.ReturnedAt == nil
}
