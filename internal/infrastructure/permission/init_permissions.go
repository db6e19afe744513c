package permission

import (
	"fmt"

	"github.com/casbin/casbin/v2"

	"github.com/thinkartha/smileybox/internal/shared/logger"
)

// InitPortalPermissions loads the role hierarchy and the policy table.
// support-lead inherits support-staff and admin inherits support-lead, so
// each row below lists only what a role adds.
func InitPortalPermissions(enforcer *casbin.Enforcer, log logger.Interface) error {
	inheritance := [][]string{
		{"admin", "support-lead"},
		{"support-lead", "support-staff"},
	}

	policies := [][]string{
		// Support staff - day to day ticket work
		{"support-staff", "ticket", "create"},
		{"support-staff", "ticket", "update"},
		{"support-staff", "message", "add"},
		{"support-staff", "internal-note", "add"},
		{"support-staff", "time-entry", "add"},
		{"support-staff", "conversion", "request"},

		// Support lead - signs the internal approval track
		{"support-lead", "approval:internal", "decide"},

		// Admin - billing, tenants, accounts and settings
		{"admin", "invoice", "create"},
		{"admin", "invoice", "update"},
		{"admin", "organization", "manage"},
		{"admin", "user", "manage"},
		{"admin", "settings", "update"},

		// Client - files tickets, talks to support, signs the client track
		{"client", "ticket", "create"},
		{"client", "message", "add"},
		{"client", "approval:client", "decide"},
	}

	for _, rule := range inheritance {
		if _, err := enforcer.AddGroupingPolicy(rule); err != nil {
			log.Errorw("failed to add role inheritance", "error", err, "role", rule[0], "inherits", rule[1])
			return fmt.Errorf("failed to add role inheritance [%s, %s]: %w", rule[0], rule[1], err)
		}
	}

	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy); err != nil {
			log.Errorw("failed to add permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	log.Debugw("portal permissions initialized", "policies", len(policies))
	return nil
}
