package dto

// CreateStaffRequest is the payload for registering a staff member with
// their access credentials.
type CreateStaffRequest struct {
	Name         string `json:"name"         binding:"required,max=100"`
	Registration string `json:"registration" binding:"required,max=10"`
	JobTitle     string `json:"job_title"    binding:"required,max=50"`
	UnitID       string `json:"unit_id"      binding:"required,uuid"`
	Username     string `json:"username"     binding:"required,max=150"`
	Email        string `json:"email"        binding:"required,email"`
	Password     string `json:"password"     binding:"required,min=8"`
}

// UpdateStaffRequest is the partial-update payload for a staff member.
type UpdateStaffRequest struct {
	Name     *string `json:"name"      binding:"omitempty,max=100"`
	JobTitle *string `json:"job_title" binding:"omitempty,max=50"`
	UnitID   *string `json:"unit_id"   binding:"omitempty,uuid"`
}

// StaffResponse is the staff-member view.
type StaffResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Registration string        `json:"registration"`
	JobTitle     string        `json:"job_title"`
	Unit         *UnitResponse `json:"unit,omitempty"`
	CreatedAt    string        `json:"created_at"`
}
