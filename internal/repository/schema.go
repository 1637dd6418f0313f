// Package repository implements the relational write patterns of the
// analytics replica: full upsert, selective upsert, replace-children and
// hard/soft delete, plus the ordered schema bootstrap.
package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/cartstream/analytics-sync/internal/domain"
)

// Bootstrap creates the replica schema. Parent tables migrate before the
// child tables that hold foreign keys to them; the first failure aborts so
// the process never starts polling against an incomplete schema.
func Bootstrap(db *gorm.DB) error {
	models := []interface{}{
		&domain.UserModel{},
		&domain.SupplierModel{},
		&domain.ProductModel{},
		&domain.ProductVariantModel{},
		&domain.OrderModel{},
		&domain.OrderItemModel{},
		&domain.PostModel{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("schema bootstrap failed for %T: %w", model, err)
		}
	}
	return nil
}
