package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskflowhq/taskflow/internal/api/domain"
)

func TestRoleSets(t *testing.T) {
	assert.True(t, domain.RoleAdmin.In(domain.AdminOnly...))
	assert.False(t, domain.RoleMember.In(domain.AdminOnly...))

	// Admin satisfies member-level requirements.
	assert.True(t, domain.RoleAdmin.In(domain.MemberOrHigher...))
	assert.True(t, domain.RoleMember.In(domain.MemberOrHigher...))

	// Unknown or empty roles never pass a gate.
	assert.False(t, domain.Role("superuser").In(domain.MemberOrHigher...))
	assert.False(t, domain.Role("").In(domain.MemberOrHigher...))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, domain.RoleAdmin.Valid())
	assert.True(t, domain.RoleMember.Valid())
	assert.False(t, domain.Role("owner").Valid())
}
