package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID         uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_employees_employee_code,priority:1"`
	DepartmentID      *uuid.UUID `gorm:"type:uuid"`
	PositionID        *uuid.UUID `gorm:"type:uuid"`
	FullName          string
	Email             string     `gorm:"uniqueIndex:uq_employee_email"`
	EmployeeCode      string     `gorm:"column:employee_code;type:varchar(30);not null;uniqueIndex:uq_employees_employee_code,priority:2"`
	Phone             string     `gorm:"type:varchar(30)"`
	HireDate          time.Time  `gorm:"type:date"`
	EmploymentStatus  string     `gorm:"type:varchar(20);default:ACTIVE"`
	WorkingHoursStart *string    `gorm:"column:working_hours_start;type:time"`
	WorkingHoursEnd   *string    `gorm:"column:working_hours_end;type:time"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`

	Department *DepartmentRef `gorm:"foreignKey:DepartmentID;references:ID"`
	Position   *PositionRef   `gorm:"foreignKey:PositionID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}

type DepartmentRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (DepartmentRef) TableName() string {
	return "departments"
}

type PositionRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (PositionRef) TableName() string {
	return "positions"
}
