package model

// Responsibility names the five lifecycle responsibilities each mapped to
// one organizational unit by the routing configuration.
type Responsibility int

const (
	ResponsibilityIntake Responsibility = iota
	ResponsibilityOpinion
	ResponsibilityResponse
	ResponsibilityFirstAppeal
	ResponsibilitySecondAppeal
)

// RoutingConfig maps each lifecycle responsibility to the unit authorized
// to perform it; maps to the single-row routing_config table. At most one
// record ever exists; it is created lazily on first read and only ever
// updated, never deleted.
type RoutingConfig struct {
	Singleton          bool    `gorm:"primaryKey;default:true" json:"-"`
	IntakeUnitID       *string `gorm:"type:uuid"               json:"intake_unit_id,omitempty"`
	OpinionUnitID      *string `gorm:"type:uuid"               json:"opinion_unit_id,omitempty"`
	ResponseUnitID     *string `gorm:"type:uuid"               json:"response_unit_id,omitempty"`
	FirstAppealUnitID  *string `gorm:"type:uuid"               json:"first_appeal_unit_id,omitempty"`
	SecondAppealUnitID *string `gorm:"type:uuid"               json:"second_appeal_unit_id,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (RoutingConfig) TableName() string { return "routing_config" }

// UnitFor returns the unit configured for a responsibility, or nil when the
// responsibility is unassigned.
func (c *RoutingConfig) UnitFor(r Responsibility) *string {
	switch r {
	case ResponsibilityIntake:
		return c.IntakeUnitID
	case ResponsibilityOpinion:
		return c.OpinionUnitID
	case ResponsibilityResponse:
		return c.ResponseUnitID
	case ResponsibilityFirstAppeal:
		return c.FirstAppealUnitID
	case ResponsibilitySecondAppeal:
		return c.SecondAppealUnitID
	}
	return nil
}

// Authorizes reports whether a staff member of the given unit may perform
// the responsibility. When no unit is assigned to the responsibility, no
// staff member is authorized: the predicate returns false, never an error.
func (c *RoutingConfig) Authorizes(unitID string, r Responsibility) bool {
	configured := c.UnitFor(r)
	return configured != nil && *configured == unitID
}
