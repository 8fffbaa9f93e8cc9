package model

// OrgUnit is an organizational unit; maps to org_units.
type OrgUnit struct {
	UnitID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"unit_id"`
	Name         string  `gorm:"type:varchar(50);not null"                      json:"name"`
	Abbreviation string  `gorm:"type:varchar(10);not null"                      json:"abbreviation"`
	Details      *string `gorm:"type:varchar(250)"                              json:"details,omitempty"`
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName sets the table name.
func (OrgUnit) TableName() string { return "org_units" }
