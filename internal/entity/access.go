package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type AccessMethod string

const (
	MethodFacial AccessMethod = "Facial"
	MethodPIN    AccessMethod = "PIN"
	MethodManual AccessMethod = "Manual"
)

type AccessType string

const (
	AccessEntry AccessType = "Entry"
	AccessExit  AccessType = "Exit"
)

func (t AccessType) Valid() bool {
	return t == AccessEntry || t == AccessExit
}

type DenialReason string

const (
	DenialNone                 DenialReason = ""
	DenialNotRecognized        DenialReason = "NotRecognized"
	DenialInvalidPin           DenialReason = "InvalidPin"
	DenialEmployeeNotFound     DenialReason = "EmployeeNotFound"
	DenialEmployeeInactive     DenialReason = "EmployeeInactive"
	DenialAreaNotFound         DenialReason = "AreaNotFound"
	DenialAreaInactive         DenialReason = "AreaInactive"
	DenialNotAuthorizedForArea DenialReason = "NotAuthorizedForArea"
	DenialNoFaceDetected       DenialReason = "NoFaceDetected"
	DenialMultipleFaces        DenialReason = "MultipleFacesDetected"
	DenialExtractionTimeout    DenialReason = "ExtractionTimeout"
)

// Verdict is the authorization outcome as a value, not an error: the
// transport layer decides how a denial maps onto its own error space.
type Verdict struct {
	Permitted bool
	Reason    DenialReason
}

func Permit() Verdict {
	return Verdict{Permitted: true}
}

func Deny(reason DenialReason) Verdict {
	return Verdict{Permitted: false, Reason: reason}
}

// AccessEvent is one row of the append-only audit log. EmployeeID and
// Confidence are pointers because a recorded manual override may lack
// either. Immutable once written.
type AccessEvent struct {
	ID           uuid.UUID
	EmployeeID   *int64
	AreaID       string
	Timestamp    time.Time
	Type         AccessType
	Method       AccessMethod
	Device       string
	Confidence   *float64
	Permitted    bool
	DenialReason DenialReason
}

// AccessDecision is what the pipeline hands back to the caller for a
// finalized attempt, permitted or not.
type AccessDecision struct {
	Permitted  bool
	Reason     DenialReason
	Employee   *Employee
	AreaID     string
	Type       AccessType
	Method     AccessMethod
	Confidence float64
	EventID    uuid.UUID
}

// AccessFilter narrows audit-log queries. Zero values mean "no filter".
type AccessFilter struct {
	EmployeeID *int64
	AreaID     string
	Type       AccessType
	From       *time.Time
	To         *time.Time
}

type Page struct {
	Number int
	Size   int
}

type PageInfo struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}
