package database

import (
	"fmt"

	"gorm.io/gorm"

	"ecommerce-service/internal/model"
)

// topCustomersViewSQL aggregates total spending per customer. Customers
// without orders report 0. The view is recomputed by the engine on
// every read; nothing is materialized.
const topCustomersViewSQL = `
CREATE VIEW ` + model.TopCustomersView + ` AS
SELECT
    c.full_name AS customer_name,
    COALESCE(SUM(o.total_amount), 0) AS total_spent
FROM customers c
LEFT JOIN orders o ON o.customer_id = c.id
GROUP BY c.id, c.full_name`

// Migrate creates or alters the physical tables for every registered
// entity and (re)creates the top-customers view.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// DROP + CREATE works on both postgres and sqlite; CREATE OR REPLACE
	// does not exist on sqlite.
	if err := db.Exec("DROP VIEW IF EXISTS " + model.TopCustomersView).Error; err != nil {
		return fmt.Errorf("failed to drop top customers view: %w", err)
	}
	if err := db.Exec(topCustomersViewSQL).Error; err != nil {
		return fmt.Errorf("failed to create top customers view: %w", err)
	}

	return nil
}
