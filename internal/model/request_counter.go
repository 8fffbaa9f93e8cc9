package model

// RequestCounter is the per-year registration-number counter; maps to
// request_counters. Numbers restart at 1 each year and are assigned with no
// gaps, under a row lock.
type RequestCounter struct {
	Year       int   `gorm:"primaryKey;type:smallint" json:"year"`
	LastNumber int64 `gorm:"not null;default:0"       json:"last_number"`
}

// TableName sets the table name.
func (RequestCounter) TableName() string { return "request_counters" }
