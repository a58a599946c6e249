package tenant

import "gorm.io/gorm"

// Scope membatasi query ke satu company. Semua repo multi-tenant wajib memakainya.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
