package model

import "time"

// InfoRequest is a citizen's information request; maps to info_requests.
//
// Stage fields are append-only: a field belonging to a stage is populated
// when the request passes through that stage and is never cleared. The
// decision booleans default to false ("denied"); whether a decision has
// actually been taken is indicated by its timestamp.
type InfoRequest struct {
	RequestID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	Situation Situation `gorm:"type:varchar(2);not null;default:'AI'"          json:"situation"`

	// creation
	RegistrationNumber int64     `gorm:"not null" json:"registration_number"`
	RegistrationYear   int       `gorm:"not null" json:"registration_year"`
	Title              string    `gorm:"type:varchar(100);not null" json:"title"`
	Description        string    `gorm:"type:text;not null"         json:"description"`
	SubmittedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"submitted_at"`
	RequesterID        string    `gorm:"type:uuid;not null"         json:"requester_id"`

	// intake triage
	SourceUnitID *string    `gorm:"type:uuid" json:"source_unit_id,omitempty"`
	RoutedAt     *time.Time `json:"routed_at,omitempty"`
	TriagedByID  *string    `gorm:"type:uuid" json:"triaged_by_id,omitempty"`

	// fulfillment by the source unit
	AttachmentPath *string    `gorm:"type:varchar(255)" json:"attachment_path,omitempty"`
	Observations   *string    `gorm:"type:text"         json:"observations,omitempty"`
	FulfilledAt    *time.Time `json:"fulfilled_at,omitempty"`
	FulfilledByID  *string    `gorm:"type:uuid" json:"fulfilled_by_id,omitempty"`

	// written opinion
	Opinion     *string    `gorm:"type:text" json:"opinion,omitempty"`
	OpinionAt   *time.Time `json:"opinion_at,omitempty"`
	OpinionByID *string    `gorm:"type:uuid" json:"opinion_by_id,omitempty"`

	// initial decision (false means denied)
	InitialGranted       bool       `gorm:"not null;default:false" json:"initial_granted"`
	InitialJustification *string    `gorm:"type:text"              json:"initial_justification,omitempty"`
	InitialDecidedAt     *time.Time `json:"initial_decided_at,omitempty"`
	InitialDecidedByID   *string    `gorm:"type:uuid"              json:"initial_decided_by_id,omitempty"`

	// first appeal
	FirstAppealDeadline      *time.Time `json:"first_appeal_deadline,omitempty"`
	FirstAppealText          *string    `gorm:"type:text" json:"first_appeal_text,omitempty"`
	FirstAppealAt            *time.Time `json:"first_appeal_at,omitempty"`
	FirstAppealGranted       bool       `gorm:"not null;default:false" json:"first_appeal_granted"`
	FirstAppealJustification *string    `gorm:"type:text"              json:"first_appeal_justification,omitempty"`
	FirstAppealDecidedAt     *time.Time `json:"first_appeal_decided_at,omitempty"`
	FirstAppealDecidedByID   *string    `gorm:"type:uuid"              json:"first_appeal_decided_by_id,omitempty"`

	// second appeal
	SecondAppealDeadline      *time.Time `json:"second_appeal_deadline,omitempty"`
	SecondAppealText          *string    `gorm:"type:text" json:"second_appeal_text,omitempty"`
	SecondAppealAt            *time.Time `json:"second_appeal_at,omitempty"`
	SecondAppealGranted       bool       `gorm:"not null;default:false" json:"second_appeal_granted"`
	SecondAppealJustification *string    `gorm:"type:text"              json:"second_appeal_justification,omitempty"`
	SecondAppealDecidedAt     *time.Time `json:"second_appeal_decided_at,omitempty"`
	SecondAppealDecidedByID   *string    `gorm:"type:uuid"              json:"second_appeal_decided_by_id,omitempty"`

	BaseModel

	Requester  *Citizen `gorm:"foreignKey:RequesterID;references:CitizenID" json:"requester,omitempty"`
	SourceUnit *OrgUnit `gorm:"foreignKey:SourceUnitID;references:UnitID"   json:"source_unit,omitempty"`
}

// TableName sets the table name.
func (InfoRequest) TableName() string { return "info_requests" }

// CanFileFirstAppeal reports whether the requester may still file the
// first-tier appeal.
func (r *InfoRequest) CanFileFirstAppeal(now time.Time) bool {
	return CanAppeal(r.FirstAppealDeadline, now, r.Situation, SituationAnswered)
}

// CanFileSecondAppeal reports whether the requester may still file the
// second-tier appeal.
func (r *InfoRequest) CanFileSecondAppeal(now time.Time) bool {
	return CanAppeal(r.SecondAppealDeadline, now, r.Situation, SituationFirstAnswered)
}
