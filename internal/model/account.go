package model

// Account roles.
const (
	RoleCitizen = "citizen"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

// Account holds login credentials; maps to accounts.
type Account struct {
	AccountID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"account_id"`
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex"         json:"username"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null"                      json:"role"`
	BaseModel
}

// TableName sets the table name.
func (Account) TableName() string { return "accounts" }
