package codepattern

import (
	"time"

	"github.com/google/uuid"
)

type CodePattern struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;not null;uniqueIndex:uq_code_pattern_company"`
	Prefix    string    `gorm:"column:prefix;type:varchar(20);not null"`
	Separator string    `gorm:"column:separator;type:varchar(5);not null;default:''"`
	MinDigits int       `gorm:"column:min_digits;not null;default:4"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (CodePattern) TableName() string {
	return "employee_code_patterns"
}
