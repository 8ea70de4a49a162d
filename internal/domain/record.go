package domain

import (
	"context"
	"time"
)

// RecordKind distinguishes an attendance submission from a proxy authorization.
type RecordKind string

const (
	KindAttend RecordKind = "ATTEND"
	KindProxy  RecordKind = "PROXY"
)

// DelegateKind says who receives a proxy's voting right.
type DelegateKind string

const (
	DelegatePresident DelegateKind = "PRESIDENT"
	DelegateOther     DelegateKind = "OTHER"
)

// PresidentDelegateName is the display name recorded when the registrant
// delegates to the organization's president.
const PresidentDelegateName = "협회장"

// Record is one registrant's persisted attendance-or-proxy submission.
// At most one Record exists per phone number; a re-submission for the same
// phone overwrites the existing record in place, keeping its ID.
// swagger:model Record
type Record struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Kind           RecordKind `json:"kind"`
	SubmittedAt    time.Time  `json:"submitted_at"`
	AgreedToPolicy bool       `json:"agreed_to_policy"`

	// Proxy-only fields.
	DelegateKind DelegateKind `json:"delegate_kind,omitempty"`
	DelegateName string       `json:"delegate_name,omitempty"`
	Signature    string       `json:"signature,omitempty"`
}

// NewAttendRecord returns an attendance Record. The caller supplies the ID so
// an existing record's identity can be reused on overwrite.
func NewAttendRecord(id, name, phone string, submittedAt time.Time) *Record {
	return &Record{
		ID:             id,
		Name:           name,
		Phone:          phone,
		Kind:           KindAttend,
		SubmittedAt:    submittedAt,
		AgreedToPolicy: true,
	}
}

// NewProxyRecord returns a proxy Record with the resolved delegate name and
// the captured signature image.
func NewProxyRecord(id, name, phone string, delegateKind DelegateKind, delegateName, signature string, submittedAt time.Time) *Record {
	return &Record{
		ID:             id,
		Name:           name,
		Phone:          phone,
		Kind:           KindProxy,
		SubmittedAt:    submittedAt,
		AgreedToPolicy: true,
		DelegateKind:   delegateKind,
		DelegateName:   delegateName,
		Signature:      signature,
	}
}

// RecordRepository defines storage operations for submission records.
// List returns the collection unordered; ordering is the caller's concern.
type RecordRepository interface {
	Save(ctx context.Context, record *Record) error
	List(ctx context.Context) ([]*Record, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// SubmissionRequest is the registrant's input for the attend flow and for the
// proxy gate check. Confirmed is set when the registrant has accepted a
// duplicate-confirmation prompt.
type SubmissionRequest struct {
	Name           string
	Phone          string
	AgreedToPolicy bool
	Confirmed      bool
}

// Conflict describes an existing record that blocks an unconfirmed
// submission. Prompt is the localized confirmation message for the specific
// transition (attend refresh, attend-to-proxy, proxy-to-proxy).
type Conflict struct {
	ExistingKind RecordKind `json:"existing_kind"`
	Prompt       string     `json:"prompt"`
}

// SubmitResult is the outcome of a persisted submission. Created is false
// when an existing record was overwritten in place.
type SubmitResult struct {
	Record  *Record `json:"record"`
	Created bool    `json:"created"`
}

// ProxyDraft carries the resolved identity from the main form into the
// proxy-authoring stage. It is produced by BeginProxy and consumed by
// CompleteProxy; abandoning the proxy form discards it.
type ProxyDraft struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ProxySubmission is the completed proxy-authoring input.
type ProxySubmission struct {
	Draft        ProxyDraft
	DelegateKind DelegateKind
	DelegateName string
	Signature    string
}

// RegistrationService governs how a registrant's identity maps to at most one
// record, how re-submissions are detected and resolved, and the admin-facing
// record operations.
type RegistrationService interface {
	// SubmitAttend validates the input and persists an attendance record.
	// When an unconfirmed duplicate exists it returns a non-nil Conflict and
	// touches nothing.
	SubmitAttend(ctx context.Context, req SubmissionRequest) (*SubmitResult, *Conflict, error)
	// BeginProxy validates the input and gates entry to the proxy-authoring
	// stage. It never persists; it returns either a draft to carry forward or
	// a Conflict requiring confirmation.
	BeginProxy(ctx context.Context, req SubmissionRequest) (*ProxyDraft, *Conflict, error)
	// CompleteProxy validates the proxy-specific fields and persists the
	// proxy record, reusing an existing record's ID for the same phone.
	CompleteProxy(ctx context.Context, sub ProxySubmission) (*SubmitResult, error)

	Records(ctx context.Context) []*Record
	RemoveRecords(ctx context.Context, ids []string) error
	ClearRecords(ctx context.Context) error
	Refresh(ctx context.Context) error
}
