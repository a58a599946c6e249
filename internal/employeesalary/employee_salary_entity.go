package employeesalary

import (
	"time"

	"github.com/google/uuid"
)

type EmployeeSalary struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_employee_salary_effective,priority:1"`
	BaseSalary    int
	EffectiveDate time.Time `gorm:"type:date;uniqueIndex:uq_employee_salary_effective,priority:2"`
	EmployeeName  string    `gorm:"->"` // diisi lewat join, tidak pernah ditulis
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (EmployeeSalary) TableName() string {
	return "employee_salaries"
}
