package invoice

import "fmt"

type Status string

const (
	StatusDraft Status = "draft"
	StatusSent  Status = "sent"
	StatusPaid  Status = "paid"
)

// statusTransitions is forward-only: draft -> sent -> paid.
var statusTransitions = map[Status][]Status{
	StatusDraft: {StatusSent},
	StatusSent:  {StatusPaid},
	StatusPaid:  {},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid invoice status: %s", s)
	}
	return st, nil
}
