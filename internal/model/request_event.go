package model

import "time"

// RequestEvent is one applied lifecycle transition; maps to request_events.
// Rows are append-only; together they form the ordered stage history of a
// request.
type RequestEvent struct {
	EventID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	RequestID      string     `gorm:"type:uuid;not null"                             json:"request_id"`
	FromSituation  *Situation `gorm:"type:varchar(2)"                                json:"from_situation,omitempty"`
	ToSituation    Situation  `gorm:"type:varchar(2);not null"                       json:"to_situation"`
	ActorAccountID *string    `gorm:"type:uuid"                                      json:"actor_account_id,omitempty"`
	OccurredAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"occurred_at"`
}

// TableName sets the table name.
func (RequestEvent) TableName() string { return "request_events" }
