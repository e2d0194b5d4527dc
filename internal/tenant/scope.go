package tenant

import "gorm.io/gorm"

// Scope restricts a query to one company's rows. Take-on sheets, counters
// and notifications are all company-scoped; cross-company reads are never
// intentional.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
