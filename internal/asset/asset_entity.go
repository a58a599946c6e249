package asset

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Asset struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_assets_code,priority:1"`
	AssetCode string    `gorm:"column:asset_code;type:varchar(50);not null;uniqueIndex:uq_assets_code,priority:2"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Category  string    `gorm:"type:varchar(50)"`
	Status    string    `gorm:"type:varchar(20);not null;default:'AVAILABLE';index"`

	HolderID   *uuid.UUID   `gorm:"type:uuid;index"`
	Holder     *EmployeeRef `gorm:"foreignKey:HolderID;references:ID"`
	AssignedAt *time.Time
	ReturnedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Asset) TableName() string {
	return "assets"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
