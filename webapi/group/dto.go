package group

// NewGroup is the request body for creating a collaborative group.
type NewGroup struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// UpdateGroupInput is the request body for group updates.
type UpdateGroupInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// NewMember is the request body for adding a member to a group.
type NewMember struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}
