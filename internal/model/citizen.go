package model

// Citizen is a requester's profile and address; maps to citizens.
type Citizen struct {
	CitizenID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"citizen_id"`
	Name       string  `gorm:"type:varchar(100);not null"                     json:"name"`
	DocumentID string  `gorm:"type:varchar(20);not null"                      json:"document_id"`
	PostalCode string  `gorm:"type:varchar(8);not null"                       json:"postal_code"`
	Street     string  `gorm:"type:varchar(100);not null"                     json:"street"`
	Number     string  `gorm:"type:varchar(10);not null"                      json:"number"`
	Complement *string `gorm:"type:varchar(50)"                               json:"complement,omitempty"`
	District   string  `gorm:"type:varchar(50);not null"                      json:"district"`
	City       string  `gorm:"type:varchar(50);not null"                      json:"city"`
	State      string  `gorm:"type:varchar(2);not null"                       json:"state"`
	AccountID  *string `gorm:"type:uuid;uniqueIndex"                          json:"account_id,omitempty"`
	BaseModel

	Account *Account `gorm:"foreignKey:AccountID;references:AccountID" json:"account,omitempty"`
}

// TableName sets the table name.
func (Citizen) TableName() string { return "citizens" }
