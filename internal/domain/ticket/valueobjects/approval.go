package valueobjects

import "fmt"

// ApprovalState is the state of one approval track. Pending is the only
// initial state; approved and rejected are terminal.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalApproved ApprovalState = "approved"
	ApprovalRejected ApprovalState = "rejected"
)

var validApprovalStates = map[ApprovalState]bool{
	ApprovalPending:  true,
	ApprovalApproved: true,
	ApprovalRejected: true,
}

func (s ApprovalState) String() string {
	return string(s)
}

func (s ApprovalState) IsValid() bool {
	return validApprovalStates[s]
}

func (s ApprovalState) IsPending() bool {
	return s == ApprovalPending
}

// IsDecision reports whether s may be submitted as a decision.
func (s ApprovalState) IsDecision() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

func NewDecision(s string) (ApprovalState, error) {
	d := ApprovalState(s)
	if !d.IsDecision() {
		return "", fmt.Errorf("invalid approval decision: %s", s)
	}
	return d, nil
}

// ApprovalTrack names who signs off: internal staff or the client organization.
type ApprovalTrack string

const (
	TrackInternal ApprovalTrack = "internal"
	TrackClient   ApprovalTrack = "client"
)

func (t ApprovalTrack) String() string {
	return string(t)
}

func (t ApprovalTrack) IsValid() bool {
	return t == TrackInternal || t == TrackClient
}

func NewApprovalTrack(s string) (ApprovalTrack, error) {
	t := ApprovalTrack(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid approval track: %s", s)
	}
	return t, nil
}

// ConversionType is the development item a ticket may be converted into.
type ConversionType string

const (
	ConversionFeature     ConversionType = "feature"
	ConversionEnhancement ConversionType = "enhancement"
)

func (c ConversionType) String() string {
	return string(c)
}

func (c ConversionType) IsValid() bool {
	return c == ConversionFeature || c == ConversionEnhancement
}

func NewConversionType(s string) (ConversionType, error) {
	c := ConversionType(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid conversion type: %s", s)
	}
	return c, nil
}
