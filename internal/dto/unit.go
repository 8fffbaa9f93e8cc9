package dto

// CreateUnitRequest is the payload for creating an organizational unit.
type CreateUnitRequest struct {
	Name         string `json:"name"         binding:"required,max=50"`
	Abbreviation string `json:"abbreviation" binding:"required,max=10"`
	Details      string `json:"details"      binding:"omitempty,max=250"`
}

// UpdateUnitRequest is the partial-update payload for a unit.
type UpdateUnitRequest struct {
	Name         *string `json:"name"         binding:"omitempty,max=50"`
	Abbreviation *string `json:"abbreviation" binding:"omitempty,max=10"`
	Details      *string `json:"details"      binding:"omitempty,max=250"`
	IsActive     *bool   `json:"is_active"`
}

// UnitListRequest are the unit-list query parameters.
type UnitListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// UnitResponse is the unit view.
type UnitResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Details      string `json:"details,omitempty"`
	IsActive     bool   `json:"is_active"`
	StaffCount   int64  `json:"staff_count"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
