package rbac

import (
	"errors"

	rbacerrors "go-hrms/internal/rbac/errors"

	"gorm.io/gorm"
)

// RoleAssigner menempelkan role (by name) ke seorang employee.
// Dipisah dari Service karena ini operasi tulis, bukan enforcement.
type RoleAssigner struct {
	db *gorm.DB
}

func NewRoleAssigner(db *gorm.DB) *RoleAssigner {
	return &RoleAssigner{db: db}
}

func (a *RoleAssigner) AssignRoleToEmployee(companyID, employeeID, roleName string) error {
	var role RoleRow
	err := a.db.Where("company_id = ? AND name = ?", companyID, roleName).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rbacerrors.ErrRoleNotFound
		}
		return err
	}

	return a.db.Exec(
		`INSERT INTO employee_roles (employee_id, role_id) VALUES (?, ?)
		 ON CONFLICT (employee_id, role_id) DO NOTHING`,
		employeeID, role.ID,
	).Error
}
