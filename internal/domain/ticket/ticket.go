package ticket

import (
	"strings"
	"time"

	vo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
)

// Ticket is the aggregate root for a support request. Messages, time entries
// and the optional conversion request have no lifecycle of their own.
type Ticket struct {
	id             string
	organizationID string
	title          string
	description    string
	status         vo.TicketStatus
	priority       vo.Priority
	category       vo.Category
	createdBy      string
	assignedTo     *string
	hoursWorked    float64
	createdAt      time.Time
	updatedAt      time.Time
	messages       []*Message
	timeEntries    []*TimeEntry
	conversion     *ConversionRequest
}

func NewTicket(
	id string,
	organizationID string,
	title string,
	description string,
	priority vo.Priority,
	category vo.Category,
	createdBy string,
	now time.Time,
) (*Ticket, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}
	if organizationID == "" {
		return nil, ErrOrganizationRequired
	}
	if createdBy == "" {
		return nil, ErrCreatorRequired
	}
	if !priority.IsValid() {
		return nil, ErrInvalidPriority
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	now = now.UTC()
	return &Ticket{
		id:             id,
		organizationID: organizationID,
		title:          title,
		description:    description,
		status:         vo.StatusOpen,
		priority:       priority,
		category:       category,
		createdBy:      createdBy,
		createdAt:      now,
		updatedAt:      now,
		messages:       []*Message{},
		timeEntries:    []*TimeEntry{},
	}, nil
}

// ReconstructParams carries a persisted ticket back into the domain.
type ReconstructParams struct {
	ID             string
	OrganizationID string
	Title          string
	Description    string
	Status         vo.TicketStatus
	Priority       vo.Priority
	Category       vo.Category
	CreatedBy      string
	AssignedTo     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Messages       []*Message
	TimeEntries    []*TimeEntry
	Conversion     *ConversionRequest
}

// ReconstructTicket rebuilds a ticket. hoursWorked is always derived from
// the time entries, whatever the stored value was.
func ReconstructTicket(p ReconstructParams) (*Ticket, error) {
	if p.ID == "" || p.OrganizationID == "" {
		return nil, ErrOrganizationRequired
	}
	if !p.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if !p.Priority.IsValid() {
		return nil, ErrInvalidPriority
	}
	if !p.Category.IsValid() {
		return nil, ErrInvalidCategory
	}
	for _, m := range p.Messages {
		if m.TicketID() != p.ID {
			return nil, ErrTicketMismatch
		}
	}
	for _, e := range p.TimeEntries {
		if e.TicketID() != p.ID {
			return nil, ErrTicketMismatch
		}
	}
	if p.Conversion != nil && p.Conversion.TicketID() != p.ID {
		return nil, ErrTicketMismatch
	}

	t := &Ticket{
		id:             p.ID,
		organizationID: p.OrganizationID,
		title:          p.Title,
		description:    p.Description,
		status:         p.Status,
		priority:       p.Priority,
		category:       p.Category,
		createdBy:      p.CreatedBy,
		assignedTo:     copyString(p.AssignedTo),
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
		messages:       append([]*Message{}, p.Messages...),
		timeEntries:    append([]*TimeEntry{}, p.TimeEntries...),
		conversion:     p.Conversion,
	}
	t.recalculateHours()
	return t, nil
}

func (t *Ticket) ID() string {
	return t.id
}

func (t *Ticket) OrganizationID() string {
	return t.organizationID
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Category() vo.Category {
	return t.category
}

func (t *Ticket) CreatedBy() string {
	return t.createdBy
}

// AssignedTo returns the assignee id, or nil when unassigned.
func (t *Ticket) AssignedTo() *string {
	return copyString(t.assignedTo)
}

func (t *Ticket) IsAssignedTo(userID string) bool {
	return t.assignedTo != nil && *t.assignedTo == userID
}

func (t *Ticket) HoursWorked() float64 {
	return t.hoursWorked
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) Messages() []*Message {
	messagesCopy := make([]*Message, len(t.messages))
	copy(messagesCopy, t.messages)
	return messagesCopy
}

func (t *Ticket) TimeEntries() []*TimeEntry {
	entriesCopy := make([]*TimeEntry, len(t.timeEntries))
	copy(entriesCopy, t.timeEntries)
	return entriesCopy
}

// ConversionRequest returns the attached request, or nil.
func (t *Ticket) ConversionRequest() *ConversionRequest {
	return t.conversion
}

func (t *Ticket) HasConversionRequest() bool {
	return t.conversion != nil
}

// IsBillable reports whether the ticket counts toward an invoice.
func (t *Ticket) IsBillable() bool {
	return t.status.IsDone()
}

// ChangeStatus sets any valid status; the lifecycle has no transition graph.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus, now time.Time) error {
	if !newStatus.IsValid() {
		return ErrInvalidStatus
	}
	t.status = newStatus
	t.touch(now)
	return nil
}

func (t *Ticket) ChangePriority(newPriority vo.Priority, now time.Time) error {
	if !newPriority.IsValid() {
		return ErrInvalidPriority
	}
	t.priority = newPriority
	t.touch(now)
	return nil
}

// AssignTo sets the assignee; nil unassigns.
func (t *Ticket) AssignTo(userID *string, now time.Time) {
	if userID != nil && *userID == "" {
		userID = nil
	}
	t.assignedTo = copyString(userID)
	t.touch(now)
}

// Unassign clears the assignee if it is userID. It reports whether it did.
func (t *Ticket) Unassign(userID string, now time.Time) bool {
	if !t.IsAssignedTo(userID) {
		return false
	}
	t.AssignTo(nil, now)
	return true
}

func (t *Ticket) AddMessage(m *Message, now time.Time) error {
	if m == nil || m.TicketID() != t.id {
		return ErrTicketMismatch
	}
	t.messages = append(t.messages, m)
	t.touch(now)
	return nil
}

// AddTimeEntry appends the entry and re-derives hoursWorked as the full sum.
func (t *Ticket) AddTimeEntry(e *TimeEntry, now time.Time) error {
	if e == nil || e.TicketID() != t.id {
		return ErrTicketMismatch
	}
	t.timeEntries = append(t.timeEntries, e)
	t.recalculateHours()
	t.touch(now)
	return nil
}

// RequestConversion attaches a new request. At most one may exist.
func (t *Ticket) RequestConversion(c *ConversionRequest, now time.Time) error {
	if t.conversion != nil {
		return ErrConversionExists
	}
	if c == nil || c.TicketID() != t.id {
		return ErrTicketMismatch
	}
	t.conversion = c
	t.touch(now)
	return nil
}

// DecideApproval records a decision on one track. It reports whether this
// decision completed the dual approval.
func (t *Ticket) DecideApproval(track vo.ApprovalTrack, decision vo.ApprovalState, now time.Time) (bool, error) {
	if t.conversion == nil {
		return false, ErrNoConversion
	}
	completed, err := t.conversion.decide(track, decision)
	if err != nil {
		return false, err
	}
	t.touch(now)
	return completed, nil
}

// Clone returns a deep copy; repositories hand out clones so callers never
// mutate stored state.
func (t *Ticket) Clone() *Ticket {
	cp := *t
	cp.assignedTo = copyString(t.assignedTo)
	cp.messages = t.Messages()
	cp.timeEntries = t.TimeEntries()
	if t.conversion != nil {
		cp.conversion = t.conversion.clone()
	}
	return &cp
}

func (t *Ticket) recalculateHours() {
	var total float64
	for _, e := range t.timeEntries {
		total += e.Hours()
	}
	t.hoursWorked = total
}

func (t *Ticket) touch(now time.Time) {
	t.updatedAt = now.UTC()
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
