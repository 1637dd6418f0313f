package domain

import "time"

// SupplierModel is the wide flat analytics row for the supplier aggregate.
// The country/state/city composite index follows the leftmost-prefix rule
// for geographic drill-down queries.
type SupplierModel struct {
	SupplierID         string  `gorm:"column:supplier_id;type:varchar(24);primaryKey"`
	Email              string  `gorm:"type:varchar(255);not null;index:idx_suppliers_email"`
	PrimaryPhone       string  `gorm:"type:varchar(50);not null"`
	ContactPersonName  *string `gorm:"type:varchar(200)"`
	ContactPersonTitle *string `gorm:"type:varchar(200)"`
	ContactPersonEmail *string `gorm:"type:varchar(255)"`
	ContactPersonPhone *string `gorm:"type:varchar(50)"`
	LegalName          string  `gorm:"type:varchar(200);not null;index:idx_suppliers_legal_name"`
	DBAName            *string `gorm:"column:dba_name;type:varchar(200)"`
	StreetAddress1     *string `gorm:"column:street_address_1;type:varchar(200)"`
	StreetAddress2     *string `gorm:"column:street_address_2;type:varchar(200)"`
	City               *string `gorm:"type:varchar(100);index:idx_suppliers_geo,priority:3"`
	State              *string `gorm:"type:varchar(100);index:idx_suppliers_geo,priority:2"`
	ZipCode            *string `gorm:"type:varchar(20)"`
	Country            *string `gorm:"type:varchar(2);index:idx_suppliers_geo,priority:1"`
	SupportEmail       *string `gorm:"type:varchar(255)"`
	SupportPhone       *string `gorm:"type:varchar(50)"`
	FacebookURL        *string `gorm:"column:facebook_url;type:text"`
	InstagramHandle    *string `gorm:"type:varchar(100)"`
	TwitterHandle      *string `gorm:"type:varchar(100)"`
	LinkedinURL        *string `gorm:"column:linkedin_url;type:text"`
	Timezone           *string `gorm:"type:varchar(50)"`

	CreatedAt time.Time `gorm:"precision:6;not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"precision:6;not null;autoUpdateTime:false"`

	EventID        *string    `gorm:"column:event_id;type:varchar(36)"`
	EventTimestamp *time.Time `gorm:"precision:6"`
}

// TableName specifies the table name for SupplierModel.
func (SupplierModel) TableName() string {
	return "suppliers"
}
