package organization

import "fmt"

type Plan string

const (
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
)

var validPlans = map[Plan]bool{
	PlanStarter:      true,
	PlanProfessional: true,
	PlanEnterprise:   true,
}

func (p Plan) String() string {
	return string(p)
}

func (p Plan) IsValid() bool {
	return validPlans[p]
}

// NewPlan parses s; an empty string yields the default, starter.
func NewPlan(s string) (Plan, error) {
	if s == "" {
		return PlanStarter, nil
	}
	p := Plan(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid plan: %s", s)
	}
	return p, nil
}
