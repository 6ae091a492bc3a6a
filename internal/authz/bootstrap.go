package authz

import (
	"fmt"

	"github.com/complaint-desk/internal/constants"
	"github.com/complaint-desk/internal/logger"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleAdmin,
			Policies: []Policy{
				{Object: "/admin/complaints", Action: "GET"},
				{Object: "/admin/complaints/:id", Action: "GET"},
				{Object: "/admin/complaints/:id", Action: "PATCH"},
				{Object: "/admin/emails", Action: "GET"},
				{Object: "/admin/permissions", Action: "GET"},
			},
		},
	}
}

// BootstrapBuiltinRoles 写入预置角色策略，并撤销预置矩阵之外的遗留策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	added, removed := 0, 0
	for _, seed := range BuiltinRoleSeeds() {
		wanted := make(map[string]struct{}, len(seed.Policies))
		for _, policy := range seed.Policies {
			wanted[policyKey(policy.Object, policy.Action)] = struct{}{}
			ok, err := s.GrantRolePolicy(seed.Role, policy.Object, policy.Action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if ok {
				added++
			}
		}

		current, err := s.GetRolePolicies(seed.Role)
		if err != nil {
			return fmt.Errorf("list builtin policies failed: %w", err)
		}
		for _, policy := range current {
			if _, keep := wanted[policyKey(policy.Object, policy.Action)]; keep {
				continue
			}
			if err := s.RevokeRolePolicy(seed.Role, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("remove stale policy failed: %w", err)
			}
			logger.Infow("authz_stale_policy_removed", "role", seed.Role, "object", policy.Object, "action", policy.Action)
			removed++
		}
	}
	if added > 0 || removed > 0 {
		logger.Infow("authz_builtin_policies_synced", "added", added, "removed", removed)
	}
	return nil
}

func policyKey(object, action string) string {
	return NormalizeAction(action) + " " + NormalizeObject(object)
}
