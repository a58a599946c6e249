package rbac

import (
	"testing"

	"go-hrms/internal/domain"
	rbacerrors "go-hrms/internal/rbac/errors"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type mockRepo struct {
	roles map[string]*RoleRow
}

func newMockRepo() *mockRepo {
	return &mockRepo{roles: make(map[string]*RoleRow)}
}

func (m *mockRepo) GetEmployeeRoles(companyID string) ([]EmployeeRoleRow, error) {
	return []EmployeeRoleRow{
		{
			EmployeeID: "emp-1",
			RoleID:     "role-owner",
		},
	}, nil
}

func (m *mockRepo) GetRolePermissions(companyID string) ([]RolePermissionRow, error) {
	return []RolePermissionRow{
		{
			RoleID:   "role-owner",
			Resource: "employee",
			Action:   "read",
		},
	}, nil
}

func (m *mockRepo) ListRoles(companyID string) ([]RoleRow, error) {
	var out []RoleRow
	for _, r := range m.roles {
		if r.CompanyID == companyID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRepo) GetRoleByID(id string) (*RoleRow, error) {
	r, ok := m.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (m *mockRepo) GetRoleByName(companyID, name string) (*RoleRow, error) {
	for _, r := range m.roles {
		if r.CompanyID == companyID && r.Name == name {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) CreateRole(role *RoleRow) error {
	if role.ID == "" {
		role.ID = "role-" + role.Name
	}
	m.roles[role.ID] = role
	return nil
}

func (m *mockRepo) UpdateRole(role *RoleRow) error {
	m.roles[role.ID] = role
	return nil
}

func (m *mockRepo) DeleteRole(id string) error {
	delete(m.roles, id)
	return nil
}

func (m *mockRepo) ListPermissions() ([]PermissionRow, error) {
	return []PermissionRow{
		{ID: "perm-1", Resource: "employee", Action: "read", Label: "Read Employee", Category: "employee"},
	}, nil
}

func (m *mockRepo) GetPermissionsByRoleID(roleID string) ([]PermissionRow, error) {
	return nil, nil
}

func (m *mockRepo) UpdateRolePermissions(roleID string, permIDs []string) error {
	return nil
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	modelText := `[request_definition]
r = sub, dom, obj, act

[policy_definition]
p = sub, dom, obj, act

[role_definition]
g = _, _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub, r.dom) && r.dom == p.dom && r.obj == p.obj && r.act == p.act
`

	m, err := model.NewModelFromString(modelText)
	assert.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	assert.NoError(t, err)

	return e
}

func TestRBACService_Enforce(t *testing.T) {
	repo := newMockRepo()
	enforcer := newTestEnforcer(t)

	service := NewService(repo, enforcer)

	err := service.LoadCompanyPolicy("company-1")
	assert.NoError(t, err)

	// Should allow
	allowed, err := service.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		Resource:   "employee",
		Action:     "read",
	})

	assert.NoError(t, err)
	assert.True(t, allowed)

	// Should deny
	denied, err := service.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		Resource:   "salary",
		Action:     "delete",
	})

	assert.NoError(t, err)
	assert.False(t, denied)
}

func TestRBACService_CreateRole(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo, newTestEnforcer(t))

	resp, err := service.CreateRole("company-1", domain.CreateRoleRequest{
		Name:        "HR",
		Description: "Human resources",
	})

	assert.NoError(t, err)
	assert.Equal(t, "HR", resp.Name)

	_, err = service.CreateRole("company-1", domain.CreateRoleRequest{Name: "HR"})
	assert.ErrorIs(t, err, rbacerrors.ErrRoleNameAlreadyExists)

	_, err = service.CreateRole("company-1", domain.CreateRoleRequest{Name: "   "})
	assert.ErrorIs(t, err, rbacerrors.ErrRoleNameRequired)
}

func TestRBACService_GetRole_NotFound(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo, newTestEnforcer(t))

	_, err := service.GetRole("missing")
	assert.ErrorIs(t, err, rbacerrors.ErrRoleNotFound)
}
