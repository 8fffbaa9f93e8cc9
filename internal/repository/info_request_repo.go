package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/proj-int-univesp/lai-cmg/internal/model"
)

// RequestSearchFilters are the optional filters of the general register
// search. OrderBy accepts "submitted_at", "-submitted_at",
// "requester_name" and "-requester_name"; anything else falls back to
// newest first.
type RequestSearchFilters struct {
	Number        *int64
	Year          *int
	RequesterName string
	Title         string
	SubmittedFrom *time.Time
	SubmittedTo   *time.Time
	Situation     *model.Situation
	OrderBy       string
}

func (f *RequestSearchFilters) empty() bool {
	return f.Number == nil && f.Year == nil && f.RequesterName == "" &&
		f.Title == "" && f.SubmittedFrom == nil && f.SubmittedTo == nil &&
		f.Situation == nil
}

// InfoRequestRepository is the information-request data-access interface.
type InfoRequestRepository interface {
	// Create assigns the registration number and persists the request plus
	// its creation event in one transaction, so an aborted transaction
	// never leaks a number.
	Create(ctx context.Context, req *model.InfoRequest) error
	GetByID(ctx context.Context, id string) (*model.InfoRequest, error)
	// Save persists field updates outside a lifecycle transition
	// (deadline stamping on view).
	Save(ctx context.Context, req *model.InfoRequest) error
	// Transition locks the row, hands the current record to fn, saves the
	// mutated record and appends the returned event, all in one
	// transaction. An error from fn rolls everything back.
	Transition(ctx context.Context, id string, fn func(req *model.InfoRequest) (*model.RequestEvent, error)) (*model.InfoRequest, error)
	ListByRequester(ctx context.Context, citizenID string) ([]model.InfoRequest, error)
	ListBySituation(ctx context.Context, situation model.Situation, orderColumn string) ([]model.InfoRequest, error)
	ListBySituationAndUnit(ctx context.Context, situation model.Situation, unitID string) ([]model.InfoRequest, error)
	// ListByYear returns the full register of one registration year in
	// number order.
	ListByYear(ctx context.Context, year int) ([]model.InfoRequest, error)
	Search(ctx context.Context, filters *RequestSearchFilters) ([]model.InfoRequest, error)
	ListEvents(ctx context.Context, requestID string) ([]model.RequestEvent, error)
}

type infoRequestRepo struct {
	db *gorm.DB
}

// NewInfoRequestRepo creates the gorm-backed InfoRequestRepository.
func NewInfoRequestRepo(db *gorm.DB) InfoRequestRepository {
	return &infoRequestRepo{db: db}
}

func (r *infoRequestRepo) Create(ctx context.Context, req *model.InfoRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextNumber(tx, req.RegistrationYear)
		if err != nil {
			return err
		}
		req.RegistrationNumber = number

		if err := tx.Create(req).Error; err != nil {
			return err
		}

		event := &model.RequestEvent{
			RequestID:   req.RequestID,
			ToSituation: req.Situation,
			OccurredAt:  req.SubmittedAt,
		}
		if req.Requester != nil && req.Requester.AccountID != nil {
			event.ActorAccountID = req.Requester.AccountID
		}
		return tx.Create(event).Error
	})
}

func (r *infoRequestRepo) GetByID(ctx context.Context, id string) (*model.InfoRequest, error) {
	var req model.InfoRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("SourceUnit").
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *infoRequestRepo) Save(ctx context.Context, req *model.InfoRequest) error {
	return r.db.WithContext(ctx).
		Omit("Requester", "SourceUnit").
		Save(req).Error
}

func (r *infoRequestRepo) Transition(ctx context.Context, id string, fn func(req *model.InfoRequest) (*model.RequestEvent, error)) (*model.InfoRequest, error) {
	var updated *model.InfoRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req model.InfoRequest
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("request_id = ?", id).
			First(&req).Error; err != nil {
			return err
		}

		event, err := fn(&req)
		if err != nil {
			return err
		}

		if err := tx.Omit("Requester", "SourceUnit").Save(&req).Error; err != nil {
			return err
		}
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		updated = &req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *infoRequestRepo) ListByRequester(ctx context.Context, citizenID string) ([]model.InfoRequest, error) {
	var reqs []model.InfoRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", citizenID).
		Order("submitted_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *infoRequestRepo) ListBySituation(ctx context.Context, situation model.Situation, orderColumn string) ([]model.InfoRequest, error) {
	switch orderColumn {
	case "submitted_at", "first_appeal_at", "second_appeal_at":
	default:
		orderColumn = "submitted_at"
	}
	var reqs []model.InfoRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("situation = ?", situation).
		Order(orderColumn + " ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *infoRequestRepo) ListBySituationAndUnit(ctx context.Context, situation model.Situation, unitID string) ([]model.InfoRequest, error) {
	var reqs []model.InfoRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("situation = ? AND source_unit_id = ?", situation, unitID).
		Order("submitted_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *infoRequestRepo) ListByYear(ctx context.Context, year int) ([]model.InfoRequest, error) {
	var reqs []model.InfoRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("SourceUnit").
		Where("registration_year = ?", year).
		Order("registration_number ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *infoRequestRepo) Search(ctx context.Context, filters *RequestSearchFilters) ([]model.InfoRequest, error) {
	q := r.db.WithContext(ctx).
		Model(&model.InfoRequest{}).
		Joins("JOIN citizens ON citizens.citizen_id = info_requests.requester_id").
		Preload("Requester")

	if filters.Number != nil {
		q = q.Where("info_requests.registration_number = ?", *filters.Number)
	}
	if filters.Year != nil {
		q = q.Where("info_requests.registration_year = ?", *filters.Year)
	}
	if filters.SubmittedFrom != nil {
		q = q.Where("info_requests.submitted_at >= ?", *filters.SubmittedFrom)
	}
	if filters.SubmittedTo != nil {
		q = q.Where("info_requests.submitted_at <= ?", *filters.SubmittedTo)
	}
	if filters.RequesterName != "" {
		q = q.Where("citizens.name ILIKE ?", "%"+filters.RequesterName+"%")
	}
	if filters.Title != "" {
		q = q.Where("info_requests.title ILIKE ?", "%"+filters.Title+"%")
	}
	if filters.Situation != nil {
		q = q.Where("info_requests.situation = ?", *filters.Situation)
	}

	switch filters.OrderBy {
	case "submitted_at":
		q = q.Order("info_requests.submitted_at ASC")
	case "-submitted_at":
		q = q.Order("info_requests.submitted_at DESC")
	case "requester_name":
		q = q.Order("citizens.name ASC")
	case "-requester_name":
		q = q.Order("citizens.name DESC")
	default:
		q = q.Order("info_requests.submitted_at DESC")
	}

	// an unfiltered register query is capped
	if filters.empty() {
		q = q.Limit(20)
	}

	var reqs []model.InfoRequest
	err := q.Find(&reqs).Error
	return reqs, err
}

func (r *infoRequestRepo) ListEvents(ctx context.Context, requestID string) ([]model.RequestEvent, error) {
	var events []model.RequestEvent
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("occurred_at ASC").
		Find(&events).Error
	return events, err
}
