package event

// UserPayload is the full user aggregate carried by user.created and
// user.updated.
type UserPayload struct {
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	Phone     *string     `json:"phone"`
	Profile   UserProfile `json:"profile"`
	Version   int         `json:"version"`
	DeletedAt Time        `json:"deleted_at"`
	CreatedAt Time        `json:"created_at"`
	UpdatedAt Time        `json:"updated_at"`
}

// UserProfile is the nested profile object of the user aggregate.
type UserProfile struct {
	DisplayName string  `json:"display_name"`
	Avatar      *string `json:"avatar"`
	Bio         *string `json:"bio"`
}

// UserRef is the minimal payload carried by user.deleted.
type UserRef struct {
	UserID string `json:"user_id"`
}
