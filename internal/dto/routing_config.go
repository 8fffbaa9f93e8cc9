package dto

// UpdateRoutingConfigRequest assigns units to lifecycle responsibilities.
// A null field clears the assignment, leaving the responsibility with no
// authorized unit.
type UpdateRoutingConfigRequest struct {
	IntakeUnitID       *string `json:"intake_unit_id"        binding:"omitempty,uuid"`
	OpinionUnitID      *string `json:"opinion_unit_id"       binding:"omitempty,uuid"`
	ResponseUnitID     *string `json:"response_unit_id"      binding:"omitempty,uuid"`
	FirstAppealUnitID  *string `json:"first_appeal_unit_id"  binding:"omitempty,uuid"`
	SecondAppealUnitID *string `json:"second_appeal_unit_id" binding:"omitempty,uuid"`
}

// RoutingConfigResponse is the routing-configuration view, with the
// responsible unit resolved per responsibility where assigned.
type RoutingConfigResponse struct {
	Intake       *UnitResponse `json:"intake,omitempty"`
	Opinion      *UnitResponse `json:"opinion,omitempty"`
	Response     *UnitResponse `json:"response,omitempty"`
	FirstAppeal  *UnitResponse `json:"first_appeal,omitempty"`
	SecondAppeal *UnitResponse `json:"second_appeal,omitempty"`
	UpdatedAt    string        `json:"updated_at"`
}
