package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
)

func ticketWithConversion(t *testing.T) *Ticket {
	t.Helper()
	tk := newValidTicket(t)
	cr, err := NewConversionRequest(tk.ID(), vo.ConversionFeature, "needed by client", "user-staff", t0)
	require.NoError(t, err)
	require.NoError(t, tk.RequestConversion(cr, t0))
	return tk
}

func TestNewConversionRequest(t *testing.T) {
	cr, err := NewConversionRequest("TKT-001", vo.ConversionEnhancement, "speeds up exports", "user-1", t0)
	require.NoError(t, err)
	assert.Equal(t, vo.ApprovalPending, cr.InternalApproval())
	assert.Equal(t, vo.ApprovalPending, cr.ClientApproval())
	assert.False(t, cr.IsFullyApproved())

	_, err = NewConversionRequest("TKT-001", vo.ConversionType("bug"), "x", "user-1", t0)
	assert.ErrorIs(t, err, ErrInvalidConversionType)
	_, err = NewConversionRequest("TKT-001", vo.ConversionFeature, "", "user-1", t0)
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestTicket_RequestConversion_OnlyOnce(t *testing.T) {
	tk := ticketWithConversion(t)
	original := tk.ConversionRequest()

	second, err := NewConversionRequest(tk.ID(), vo.ConversionEnhancement, "other", "user-lead", t1)
	require.NoError(t, err)

	assert.ErrorIs(t, tk.RequestConversion(second, t1), ErrConversionExists)
	assert.Same(t, original, tk.ConversionRequest())
	assert.Equal(t, vo.ConversionFeature, tk.ConversionRequest().ProposedType())
	assert.Equal(t, t0, tk.UpdatedAt())
}

func TestTicket_DecideApproval_WithoutRequest(t *testing.T) {
	tk := newValidTicket(t)
	_, err := tk.DecideApproval(vo.TrackInternal, vo.ApprovalApproved, t1)
	assert.ErrorIs(t, err, ErrNoConversion)
}

func TestTicket_DecideApproval_CompletesOnSecondApproval(t *testing.T) {
	tests := []struct {
		name  string
		first vo.ApprovalTrack
		then  vo.ApprovalTrack
	}{
		{"internal then client", vo.TrackInternal, vo.TrackClient},
		{"client then internal", vo.TrackClient, vo.TrackInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := ticketWithConversion(t)

			completed, err := tk.DecideApproval(tt.first, vo.ApprovalApproved, t1)
			require.NoError(t, err)
			assert.False(t, completed)

			completed, err = tk.DecideApproval(tt.then, vo.ApprovalApproved, t2)
			require.NoError(t, err)
			assert.True(t, completed)
			assert.True(t, tk.ConversionRequest().IsFullyApproved())
			assert.Equal(t, t2, tk.UpdatedAt())
		})
	}
}

func TestTicket_DecideApproval_TerminalStates(t *testing.T) {
	for _, first := range []vo.ApprovalState{vo.ApprovalApproved, vo.ApprovalRejected} {
		for _, next := range []vo.ApprovalState{vo.ApprovalApproved, vo.ApprovalRejected} {
			t.Run(first.String()+"->"+next.String(), func(t *testing.T) {
				tk := ticketWithConversion(t)
				_, err := tk.DecideApproval(vo.TrackClient, first, t1)
				require.NoError(t, err)

				_, err = tk.DecideApproval(vo.TrackClient, next, t2)
				assert.ErrorIs(t, err, ErrTrackDecided)
				assert.Equal(t, first, tk.ConversionRequest().ClientApproval())
				assert.Equal(t, vo.ApprovalPending, tk.ConversionRequest().InternalApproval())
			})
		}
	}
}

func TestTicket_DecideApproval_RejectionNeverCompletes(t *testing.T) {
	tk := ticketWithConversion(t)

	completed, err := tk.DecideApproval(vo.TrackInternal, vo.ApprovalApproved, t1)
	require.NoError(t, err)
	assert.False(t, completed)

	completed, err = tk.DecideApproval(vo.TrackClient, vo.ApprovalRejected, t2)
	require.NoError(t, err)
	assert.False(t, completed)
	assert.False(t, tk.ConversionRequest().IsFullyApproved())
}

func TestTicket_DecideApproval_BadInput(t *testing.T) {
	tk := ticketWithConversion(t)

	_, err := tk.DecideApproval(vo.ApprovalTrack("manager"), vo.ApprovalApproved, t1)
	assert.ErrorIs(t, err, ErrInvalidTrack)

	_, err = tk.DecideApproval(vo.TrackInternal, vo.ApprovalPending, t1)
	assert.ErrorIs(t, err, ErrInvalidDecision)
	assert.Equal(t, t0, tk.UpdatedAt())
}
