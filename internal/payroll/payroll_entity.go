package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payroll struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID    `gorm:"type:uuid;not null;index:idx_payrolls_company_status,priority:1;uniqueIndex:uq_payrolls_number,priority:1"`
	PayrollNumber string       `gorm:"column:payroll_number;type:varchar(20);not null;uniqueIndex:uq_payrolls_number,priority:2"`
	EmployeeID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	Employee      *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	PeriodStart time.Time `gorm:"type:date;not null"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`

	// Nilai uang disimpan dalam satuan terkecil untuk hindari floating error.
	BaseSalary int64 `gorm:"type:bigint;not null;default:0"`
	Allowance  int64 `gorm:"type:bigint;not null;default:0"`
	Deduction  int64 `gorm:"type:bigint;not null;default:0"`
	NetSalary  int64 `gorm:"type:bigint;not null;default:0"`

	Status     string     `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_payrolls_company_status,priority:2"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt          time.Time
	UpdatedAt          time.Time
	ApprovedAt         *time.Time `gorm:"index"`
	PaidAt             *time.Time `gorm:"index"`
	PayslipGeneratedAt *time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (Payroll) TableName() string {
	return "payrolls"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
