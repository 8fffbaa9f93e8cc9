package model

// StaffMember is a public servant assigned to an organizational unit; maps
// to staff_members. The unit determines which lifecycle stages the
// member may act on, via the routing configuration.
type StaffMember struct {
	StaffID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Registration string  `gorm:"type:varchar(10);not null;uniqueIndex"          json:"registration"`
	JobTitle     string  `gorm:"type:varchar(50);not null"                      json:"job_title"`
	UnitID       string  `gorm:"type:uuid;not null"                             json:"unit_id"`
	AccountID    *string `gorm:"type:uuid;uniqueIndex"                          json:"account_id,omitempty"`
	BaseModel

	Unit    *OrgUnit `gorm:"foreignKey:UnitID;references:UnitID"       json:"unit,omitempty"`
	Account *Account `gorm:"foreignKey:AccountID;references:AccountID" json:"account,omitempty"`
}

// TableName sets the table name.
func (StaffMember) TableName() string { return "staff_members" }
