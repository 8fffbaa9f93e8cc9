package dto

// ── transition payloads ──

// CreateInfoRequest is the citizen's submission payload.
type CreateInfoRequest struct {
	Title       string `json:"title"       binding:"required,max=100"`
	Description string `json:"description" binding:"required"`
}

// TriageRequest routes the request to the unit holding the information.
type TriageRequest struct {
	SourceUnitID string `json:"source_unit_id" binding:"required,uuid"`
}

// FulfillRequest carries the fulfillment fields; the attachment itself
// arrives as a multipart file alongside.
type FulfillRequest struct {
	Observations string `form:"observations" binding:"omitempty"`
}

// OpinionRequest carries the written opinion.
type OpinionRequest struct {
	Opinion string `json:"opinion" binding:"required"`
}

// DecisionRequest is the payload of all three decision tiers. A denial
// (granted=false) requires a non-blank justification; this is validated in
// the service, not by binding, so the caller gets a field-level message.
type DecisionRequest struct {
	Granted       *bool  `json:"granted" binding:"required"`
	Justification string `json:"justification"`
}

// AppealRequest carries the citizen's appeal text, for either tier.
type AppealRequest struct {
	Text string `json:"text" binding:"required"`
}

// ── queries ──

// RequestSearchQuery are the general-register search parameters.
type RequestSearchQuery struct {
	Number        *int64  `form:"number"`
	Year          *int    `form:"year"`
	RequesterName string  `form:"requester"`
	Title         string  `form:"title"`
	SubmittedFrom string  `form:"date_from"` // 2006-01-02
	SubmittedTo   string  `form:"date_to"`
	Situation     string  `form:"situation"`
	OrderBy       string  `form:"order_by"`
}

// ── responses ──

// RequestSummaryResponse is the list-view row.
type RequestSummaryResponse struct {
	ID             string `json:"id"`
	Protocol       string `json:"protocol"` // "number/year"
	Title          string `json:"title"`
	Situation      string `json:"situation"`
	SituationLabel string `json:"situation_label"`
	RequesterName  string `json:"requester_name,omitempty"`
	SubmittedAt    string `json:"submitted_at"`
}

// DecisionView is one decision tier of the detail view.
type DecisionView struct {
	Granted       bool   `json:"granted"`
	Justification string `json:"justification,omitempty"`
	DecidedAt     string `json:"decided_at"`
	DecidedBy     string `json:"decided_by,omitempty"`
}

// AppealView is one appeal tier of the detail view.
type AppealView struct {
	Deadline string        `json:"deadline,omitempty"`
	Text     string        `json:"text,omitempty"`
	FiledAt  string        `json:"filed_at,omitempty"`
	Decision *DecisionView `json:"decision,omitempty"`
}

// RequestEventResponse is one row of the transition history.
type RequestEventResponse struct {
	From       string `json:"from,omitempty"`
	To         string `json:"to"`
	OccurredAt string `json:"occurred_at"`
}

// RequestDetailResponse is the full record view. Stage blocks are present
// only once the request has passed through the stage.
type RequestDetailResponse struct {
	ID             string `json:"id"`
	Protocol       string `json:"protocol"`
	Situation      string `json:"situation"`
	SituationLabel string `json:"situation_label"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	SubmittedAt    string `json:"submitted_at"`
	RequesterName  string `json:"requester_name"`

	SourceUnit *UnitResponse `json:"source_unit,omitempty"`
	RoutedAt   string        `json:"routed_at,omitempty"`

	AttachmentPath string `json:"attachment_path,omitempty"`
	Observations   string `json:"observations,omitempty"`
	FulfilledAt    string `json:"fulfilled_at,omitempty"`

	Opinion   string `json:"opinion,omitempty"`
	OpinionAt string `json:"opinion_at,omitempty"`

	InitialDecision *DecisionView `json:"initial_decision,omitempty"`
	FirstAppeal     *AppealView   `json:"first_appeal,omitempty"`
	SecondAppeal    *AppealView   `json:"second_appeal,omitempty"`

	CanFileFirstAppeal  bool `json:"can_file_first_appeal"`
	CanFileSecondAppeal bool `json:"can_file_second_appeal"`

	Events []RequestEventResponse `json:"events,omitempty"`
}
