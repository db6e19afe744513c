package ticket

import (
	"strings"
	"time"

	vo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
)

// ConversionRequest proposes turning a support ticket into a development
// item. It needs independent sign-off on two tracks, internal and client;
// each track leaves pending exactly once.
type ConversionRequest struct {
	ticketID         string
	proposedType     vo.ConversionType
	reason           string
	proposedBy       string
	createdAt        time.Time
	internalApproval vo.ApprovalState
	clientApproval   vo.ApprovalState
}

func NewConversionRequest(ticketID string, proposedType vo.ConversionType, reason, proposedBy string, now time.Time) (*ConversionRequest, error) {
	if !proposedType.IsValid() {
		return nil, ErrInvalidConversionType
	}
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
	if ticketID == "" || proposedBy == "" {
		return nil, ErrTicketMismatch
	}
	return &ConversionRequest{
		ticketID:         ticketID,
		proposedType:     proposedType,
		reason:           reason,
		proposedBy:       proposedBy,
		createdAt:        now.UTC(),
		internalApproval: vo.ApprovalPending,
		clientApproval:   vo.ApprovalPending,
	}, nil
}

func ReconstructConversionRequest(
	ticketID string,
	proposedType vo.ConversionType,
	reason, proposedBy string,
	createdAt time.Time,
	internalApproval, clientApproval vo.ApprovalState,
) (*ConversionRequest, error) {
	if !proposedType.IsValid() {
		return nil, ErrInvalidConversionType
	}
	if !internalApproval.IsValid() || !clientApproval.IsValid() {
		return nil, ErrInvalidDecision
	}
	return &ConversionRequest{
		ticketID:         ticketID,
		proposedType:     proposedType,
		reason:           reason,
		proposedBy:       proposedBy,
		createdAt:        createdAt,
		internalApproval: internalApproval,
		clientApproval:   clientApproval,
	}, nil
}

func (c *ConversionRequest) TicketID() string { return c.ticketID }
func (c *ConversionRequest) ProposedType() vo.ConversionType { return c.proposedType }
func (c *ConversionRequest) Reason() string { return c.reason }
func (c *ConversionRequest) ProposedBy() string { return c.proposedBy }
func (c *ConversionRequest) CreatedAt() time.Time { return c.createdAt }
func (c *ConversionRequest) InternalApproval() vo.ApprovalState { return c.internalApproval }
func (c *ConversionRequest) ClientApproval() vo.ApprovalState { return c.clientApproval }

// Approval returns the state of the given track.
func (c *ConversionRequest) Approval(track vo.ApprovalTrack) vo.ApprovalState {
	if track == vo.TrackClient {
		return c.clientApproval
	}
	return c.internalApproval
}

func (c *ConversionRequest) IsFullyApproved() bool {
	return c.internalApproval == vo.ApprovalApproved && c.clientApproval == vo.ApprovalApproved
}

// decide moves one track out of pending. It reports whether this call is
// the one that completed the dual approval.
func (c *ConversionRequest) decide(track vo.ApprovalTrack, decision vo.ApprovalState) (bool, error) {
	if !track.IsValid() {
		return false, ErrInvalidTrack
	}
	if !decision.IsDecision() {
		return false, ErrInvalidDecision
	}

	current := c.Approval(track)
	if !current.IsPending() {
		return false, errTrackDecided(track.String(), current.String())
	}

	wasApproved := c.IsFullyApproved()
	if track == vo.TrackClient {
		c.clientApproval = decision
	} else {
		c.internalApproval = decision
	}
	return !wasApproved && c.IsFullyApproved(), nil
}

func (c *ConversionRequest) clone() *ConversionRequest {
	cp := *c
	return &cp
}
