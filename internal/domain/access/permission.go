package access

import (
	"context"

	ticketvo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
	uservo "github.com/thinkartha/smileybox/internal/domain/user/valueobjects"
)

// Resource names a guarded object in the permission table.
type Resource string

const (
	ResourceTicket           Resource = "ticket"
	ResourceMessage          Resource = "message"
	ResourceInternalNote     Resource = "internal-note"
	ResourceTimeEntry        Resource = "time-entry"
	ResourceConversion       Resource = "conversion"
	ResourceApprovalInternal Resource = "approval:internal"
	ResourceApprovalClient   Resource = "approval:client"
	ResourceInvoice          Resource = "invoice"
	ResourceOrganization     Resource = "organization"
	ResourceUser             Resource = "user"
	ResourceSettings         Resource = "settings"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionAdd     Action = "add"
	ActionRequest Action = "request"
	ActionDecide  Action = "decide"
	ActionManage  Action = "manage"
)

// Authorizer answers whether a role may perform an action on a resource.
type Authorizer interface {
	Can(ctx context.Context, role uservo.Role, resource Resource, action Action) (bool, error)
}

// ApprovalResource maps an approval track to its guarded resource.
func ApprovalResource(track ticketvo.ApprovalTrack) Resource {
	if track == ticketvo.TrackClient {
		return ResourceApprovalClient
	}
	return ResourceApprovalInternal
}

// OwnTrack is the approval track a role signs for.
func OwnTrack(role uservo.Role) ticketvo.ApprovalTrack {
	if role.IsClient() {
		return ticketvo.TrackClient
	}
	return ticketvo.TrackInternal
}

// MessageResource picks the resource guarding a message post.
func MessageResource(isInternal bool) Resource {
	if isInternal {
		return ResourceInternalNote
	}
	return ResourceMessage
}
