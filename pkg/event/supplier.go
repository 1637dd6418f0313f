package event

// SupplierPayload is the full supplier aggregate carried by supplier.created
// and supplier.updated. The flat analytics row is sourced from several
// nested objects, including the doubly-nested contact person and business
// address.
type SupplierPayload struct {
	SupplierID  string          `json:"supplier_id"`
	Email       string          `json:"email"`
	ContactInfo SupplierContact `json:"contact_info"`
	CompanyInfo CompanyInfo     `json:"company_info"`
	SocialMedia SocialMedia     `json:"social_media"`
	Timezone    *string         `json:"timezone"`
	CreatedAt   Time            `json:"created_at"`
	UpdatedAt   Time            `json:"updated_at"`
}

type SupplierContact struct {
	PrimaryPhone  string        `json:"primary_phone"`
	ContactPerson ContactPerson `json:"contact_person"`
	SupportEmail  *string       `json:"support_email"`
	SupportPhone  *string       `json:"support_phone"`
}

type ContactPerson struct {
	Name  *string `json:"name"`
	Title *string `json:"title"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type CompanyInfo struct {
	LegalName       string         `json:"legal_name"`
	DBAName         *string        `json:"dba_name"`
	BusinessAddress CompanyAddress `json:"business_address"`
}

type CompanyAddress struct {
	StreetAddress1 *string `json:"street_address_1"`
	StreetAddress2 *string `json:"street_address_2"`
	City           *string `json:"city"`
	State          *string `json:"state"`
	ZipCode        *string `json:"zip_code"`
	Country        *string `json:"country"`
}

type SocialMedia struct {
	FacebookURL     *string `json:"facebook_url"`
	InstagramHandle *string `json:"instagram_handle"`
	TwitterHandle   *string `json:"twitter_handle"`
	LinkedinURL     *string `json:"linkedin_url"`
}

// SupplierRef is the minimal payload carried by supplier.deleted.
type SupplierRef struct {
	SupplierID string `json:"supplier_id"`
}
