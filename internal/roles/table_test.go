package roles_test

import (
	"testing"

	"go-hradmin/internal/roles"

	"github.com/stretchr/testify/assert"
)

func TestTable_HasPermission(t *testing.T) {
	table := roles.NewTable()

	assert.True(t, table.HasPermission(roles.RoleSystemAdmin, roles.PermAccessRequestReview))
	assert.True(t, table.HasPermission(roles.RoleHRAdmin, roles.PermSheetDelete))
	assert.True(t, table.HasPermission(roles.RoleHRManager, roles.PermSheetTransition))
	assert.False(t, table.HasPermission(roles.RoleHRManager, roles.PermAccessRequestReview))
	assert.False(t, table.HasPermission(roles.RoleLineManager, roles.PermSheetDelete))
	assert.False(t, table.HasPermission(roles.RoleEmployee, roles.PermSheetRead))
	assert.False(t, table.HasPermission("Intern", roles.PermSheetRead))
}

func TestTable_CanEditSection(t *testing.T) {
	table := roles.NewTable()

	t.Run("elevated roles edit everything everywhere", func(t *testing.T) {
		sections := []string{
			roles.SectionEmploymentInfo,
			roles.SectionPersonalDetails,
			roles.SectionSystemAccess,
			roles.SectionDocuments,
		}
		statuses := []string{"draft", "pending_hr_review", "pending_it_setup", "complete"}
		for _, role := range []string{roles.RoleSystemAdmin, roles.RoleHRAdmin} {
			for _, section := range sections {
				for _, status := range statuses {
					assert.True(t, table.CanEditSection(role, section, status),
						"%s / %s / %s", role, section, status)
				}
			}
		}
	})

	t.Run("hr manager limited to review window", func(t *testing.T) {
		assert.True(t, table.CanEditSection(roles.RoleHRManager, roles.SectionPersonalDetails, "draft"))
		assert.True(t, table.CanEditSection(roles.RoleHRManager, roles.SectionPersonalDetails, "pending_hr_review"))
		assert.False(t, table.CanEditSection(roles.RoleHRManager, roles.SectionPersonalDetails, "pending_it_setup"))
		assert.False(t, table.CanEditSection(roles.RoleHRManager, roles.SectionSystemAccess, "draft"))
	})

	t.Run("line manager drafts only", func(t *testing.T) {
		assert.True(t, table.CanEditSection(roles.RoleLineManager, roles.SectionEmploymentInfo, "draft"))
		assert.False(t, table.CanEditSection(roles.RoleLineManager, roles.SectionEmploymentInfo, "pending_hr_review"))
	})

	t.Run("unknown role fails closed", func(t *testing.T) {
		assert.False(t, table.CanEditSection("Contractor", roles.SectionEmploymentInfo, "draft"))
	})

	t.Run("unknown section fails closed", func(t *testing.T) {
		assert.False(t, table.CanEditSection(roles.RoleSystemAdmin, "salary_info", "draft"))
	})
}

func TestTable_Level(t *testing.T) {
	table := roles.NewTable()

	assert.Equal(t, roles.TransitionAll, table.Level(roles.RoleSystemAdmin))
	assert.Equal(t, roles.TransitionAll, table.Level(roles.RoleHRAdmin))
	assert.Equal(t, roles.TransitionHRReview, table.Level(roles.RoleHRManager))
	assert.Equal(t, roles.TransitionInitiate, table.Level(roles.RoleLineManager))
	assert.Equal(t, roles.TransitionNone, table.Level(roles.RoleEmployee))
	assert.Equal(t, roles.TransitionNone, table.Level("nobody"))
}
