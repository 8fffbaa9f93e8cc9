package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/proj-int-univesp/lai-cmg/config"
	"github.com/proj-int-univesp/lai-cmg/internal/dto"
	"github.com/proj-int-univesp/lai-cmg/internal/model"
	"github.com/proj-int-univesp/lai-cmg/internal/repository"
	pkgerrors "github.com/proj-int-univesp/lai-cmg/pkg/errors"
)

// ── request module business errors ──

var (
	ErrRequestNotFound       = errors.New("information request not found")
	ErrForbidden             = errors.New("actor not authorized for this action")
	ErrJustificationRequired = errors.New("a denial requires a justification")
	ErrUnknownQueue          = errors.New("unknown queue stage")
	ErrAttachmentTooLarge    = errors.New("attachment exceeds the size limit")
	ErrInvalidDateFilter     = errors.New("date filter is not a valid YYYY-MM-DD date")
)

// maxAttachmentSize bounds uploaded fulfillment attachments.
const maxAttachmentSize = 10 << 20

// RequestService owns the request lifecycle: every transition of the
// situation graph, guarded by actor resolution and unit authorization, plus
// the read operations (detail, queues, own list, register search).
type RequestService interface {
	Create(ctx context.Context, accountID, role string, req *dto.CreateInfoRequest) (*dto.RequestDetailResponse, error)
	Get(ctx context.Context, accountID, role, id string) (*dto.RequestDetailResponse, error)
	ListMine(ctx context.Context, accountID, role string) ([]dto.RequestSummaryResponse, error)
	Queue(ctx context.Context, accountID, role, stage string) ([]dto.RequestSummaryResponse, error)
	Search(ctx context.Context, accountID, role string, q *dto.RequestSearchQuery) ([]dto.RequestSummaryResponse, error)

	// AttachmentPath resolves the fulfillment attachment for download,
	// under the same visibility rules as Get.
	AttachmentPath(ctx context.Context, accountID, role, id string) (string, error)

	Triage(ctx context.Context, accountID, role, id string, req *dto.TriageRequest) (*dto.RequestDetailResponse, error)
	Fulfill(ctx context.Context, accountID, role, id string, req *dto.FulfillRequest, attachmentName string, attachment io.Reader) (*dto.RequestDetailResponse, error)
	Opine(ctx context.Context, accountID, role, id string, req *dto.OpinionRequest) (*dto.RequestDetailResponse, error)
	DecideInitial(ctx context.Context, accountID, role, id string, req *dto.DecisionRequest) (*dto.RequestDetailResponse, error)
	FileFirstAppeal(ctx context.Context, accountID, role, id string, req *dto.AppealRequest) (*dto.RequestDetailResponse, error)
	DecideFirstAppeal(ctx context.Context, accountID, role, id string, req *dto.DecisionRequest) (*dto.RequestDetailResponse, error)
	FileSecondAppeal(ctx context.Context, accountID, role, id string, req *dto.AppealRequest) (*dto.RequestDetailResponse, error)
	DecideSecondAppeal(ctx context.Context, accountID, role, id string, req *dto.DecisionRequest) (*dto.RequestDetailResponse, error)
}

type requestService struct {
	cfg    *config.Config
	repo   *repository.Repository
	actors ActorResolver
	logger *zap.Logger
	now    func() time.Time
}

// NewRequestService creates a RequestService instance.
func NewRequestService(cfg *config.Config, repo *repository.Repository, actors ActorResolver, logger *zap.Logger) RequestService {
	return &requestService{
		cfg:    cfg,
		repo:   repo,
		actors: actors,
		logger: logger,
		now:    time.Now,
	}
}

// ────────────────────── Create ──────────────────────

func (s *requestService) Create(ctx context.Context, accountID, role string, req *dto.CreateInfoRequest) (*dto.RequestDetailResponse, error) {
	actor, err := s.actors.Resolve(ctx, accountID, role)
	if err != nil {
		return nil, err
	}
	if !actor.IsCitizen() {
		return nil, ErrForbidden
	}

	now := s.now()
	record := &model.InfoRequest{
		Situation:        model.SituationIntake,
		RegistrationYear: now.Year(),
		Title:            req.Title,
		Description:      req.Description,
		SubmittedAt:      now,
		RequesterID:      actor.Citizen.CitizenID,
		Requester:        actor.Citizen,
	}

	// number assignment and the insert share one transaction; a duplicate
	// registration number means a concurrent creation won the counter race
	// and the whole creation is retried once, invisibly to the citizen
	if err := s.repo.Request.Create(ctx, record); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Error("request creation failed", zap.Error(err))
			return nil, err
		}
		s.logger.Warn("registration number taken, retrying once", zap.Error(err))
		record.RequestID = ""
		if err := s.repo.Request.Create(ctx, record); err != nil {
			s.logger.Error("request creation failed after retry", zap.Error(err))
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("%w: %v", pkgerrors.ErrConflict, err)
			}
			return nil, err
		}
	}

	return s.toDetail(ctx, record, actor), nil
}

// ────────────────────── Get ──────────────────────

// Get returns the record detail after the visibility check: the requester
// sees their own record; intake-authorized staff see everything; other
// staff see a record only while it sits in the stage their unit is
// responsible for. A citizen's first view of a denied answer starts the
// matching appeal clock.
func (s *requestService) Get(ctx context.Context, accountID, role, id string) (*dto.RequestDetailResponse, error) {
	actor, err := s.actors.Resolve(ctx, accountID, role)
	if err != nil {
		return nil, err
	}

	record, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	routing, err := s.repo.RoutingConfig.Get(ctx)
	if err != nil {
		return nil, err
	}

	if !s.mayView(actor, record, routing) {
		return nil, ErrForbidden
	}

	if actor.IsCitizen() {
		if err := s.stampAppealDeadlines(ctx, record); err != nil {
			return nil, err
		}
	}

	return s.toDetail(ctx, record, actor), nil
}

func (s *requestService) mayView(actor *Actor, record *model.InfoRequest, routing *model.RoutingConfig) bool {
	if actor.IsCitizen() {
		return record.RequesterID == actor.Citizen.CitizenID
	}
	if !actor.IsStaff() {
		return false
	}

	unitID := actor.Staff.UnitID
	if routing.Authorizes(unitID, model.ResponsibilityIntake) {
		return true
	}

	switch record.Situation {
	case model.SituationSourcing:
		return record.SourceUnitID != nil && *record.SourceUnitID == unitID
	case model.SituationDraftingOpine:
		return routing.Authorizes(unitID, model.ResponsibilityOpinion)
	case model.SituationDecidingAnswer:
		return routing.Authorizes(unitID, model.ResponsibilityResponse)
	case model.SituationFirstAppeal:
		return routing.Authorizes(unitID, model.ResponsibilityFirstAppeal)
	case model.SituationSecondAppeal:
		return routing.Authorizes(unitID, model.ResponsibilitySecondAppeal)
	}
	return false
}

// stampAppealDeadlines sets an appeal deadline the first time the citizen is
// exposed to a denial. Each deadline is written exactly once and never
// recomputed.
func (s *requestService) stampAppealDeadlines(ctx context.Context, record *model.InfoRequest) error {
	now := s.now()
	window := s.cfg.Lifecycle.AppealWindow()
	changed := false

	if record.FirstAppealDeadline == nil &&
		record.Situation == model.SituationAnswered &&
		!record.InitialGranted {
		deadline := now.Add(window)
		record.FirstAppealDeadline = &deadline
		changed = true
	}
	if record.SecondAppealDeadline == nil &&
		record.Situation == model.SituationFirstAnswered &&
		!record.FirstAppealGranted {
		deadline := now.Add(window)
		record.SecondAppealDeadline = &deadline
		changed = true
	}

	if !changed {
		return nil
	}
	if err := s.repo.Request.Save(ctx, record); err != nil {
		s.logger.Error("stamping appeal deadline failed",
			zap.String("request_id", record.RequestID), zap.Error(err))
		return err
	}
	return nil
}

var ErrNoAttachment = errors.New("request has no attachment")

func (s *requestService) AttachmentPath(ctx context.Context, accountID, role, id string) (string, error) {
	actor, err := s.actors.Resolve(ctx, accountID, role)
	if err != nil {
		return "", err
	}
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return "", err
	}
	routing, err := s.repo.RoutingConfig.Get(ctx)
	if err != nil {
		return "", err
	}
	if !s.mayView(actor, record, routing) {
		return "", ErrForbidden
	}
	if record.AttachmentPath == nil || *record.AttachmentPath == "" {
		return "", ErrNoAttachment
	}
	return *record.AttachmentPath, nil
}

// ────────────────────── listings ──────────────────────

func (s *requestService) ListMine(ctx context.Context, accountID, role string) ([]dto.RequestSummaryResponse, error) {
	actor, err := s.actors.Resolve(ctx, accountID, role)
	if err != nil {
		return nil, err
	}
	if !actor.IsCitizen() {
		return nil, ErrForbidden
	}

	records, err := s.repo.Request.ListByRequester(ctx, actor.Citizen.CitizenID)
	if err != nil {
		s.logger.Error("listing own requests failed", zap.Error(err))
		return nil, err
	}
	return s.toSummaries(records), nil
}

// Queue returns the work queue of one lifecycle stage for an authorized
// staff member. The fulfillment queue is restricted to the staff's own
// unit; both appeal queues are ordered by appeal-filing date.
func (s *requestService) Queue(ctx context.Context, accountID, role, stage string) ([]dto.RequestSummaryResponse, error) {
	actor, err := s.actors.Resolve(ctx, accountID, role)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}

	routing, err := s.repo.RoutingConfig.Get(ctx)
	if err != nil {
		return nil, err
	}
	unitID := actor.Staff.UnitID

	var records []model.InfoRequest
	switch stage {
	case "intake":
		if !routing.Authorizes(unitID, model.ResponsibilityIntake) {
			return nil, ErrForbidden
		}
		records, err = s.repo.Request.ListBySituation(ctx, model.SituationIntake, "submitted_at")
	case "fulfillment":
		records, err = s.repo.Request.ListBySituationAndUnit(ctx, model.SituationSourcing, unitID)
	case "opinion":
		if !routing.Authorizes(unitID, model.ResponsibilityOpinion) {
			return nil, ErrForbidden
		}
		records, err = s.repo.Request.ListBySituation(ctx, model.SituationDraftingOpine, "submitted_at")
	case "response":
		if !routing.Authorizes(unitID, model.ResponsibilityResponse) {
			return nil, ErrForbidden
		}
		records, err = s.repo.Request.ListBySituation(ctx, model.SituationDecidingAnswer, "submitted_at")
	case "first-appeal":
		if !routing.Authorizes(unitID, model.ResponsibilityFirstAppeal) {
			return nil, ErrForbidden
		}
		records, err = s.repo.Request.ListBySituation(ctx, model.SituationFirstAppeal, "first_appeal_at")
	case "second-appeal":
		if !routing.Authorizes(unitID, model.ResponsibilitySecondAppeal) {
			return nil, ErrForbidden
		}
		records, err = s.repo.Request.ListBySituation(ctx, model.SituationSecondAppeal, "second_appeal_at")
	default:
		return nil, ErrUnknownQueue
	}
	if err != nil {
		s.logger.Error("listing queue failed", zap.String("stage", stage), zap.Error(err))
		return nil, err
	}

	return s.toSummaries(records), nil
}

func (s *requestService) Search(ctx context.Context, accountID, role string, q *dto.RequestSearchQuery) ([]dto.RequestSummaryResponse, error) {
	actor, err := s.actors.Resolve(ctx, accountID, role)
	if err != nil {
		return nil, err
	}
	routing, err := s.repo.RoutingConfig.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() || !routing.Authorizes(actor.Staff.UnitID, model.ResponsibilityIntake) {
		return nil, ErrForbidden
	}

	filters := &repository.RequestSearchFilters{
		Number:        q.Number,
		Year:          q.Year,
		RequesterName: q.RequesterName,
		Title:         q.Title,
		OrderBy:       q.OrderBy,
	}
	if q.SubmittedFrom != "" {
		t, err := time.Parse("2006-01-02", q.SubmittedFrom)
		if err != nil {
			return nil, ErrInvalidDateFilter
		}
		filters.SubmittedFrom = &t
	}
	if q.SubmittedTo != "" {
		t, err := time.Parse("2006-01-02", q.SubmittedTo)
		if err != nil {
			return nil, ErrInvalidDateFilter
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filters.SubmittedTo = &end
	}
	if q.Situation != "" {
		sit := model.Situation(q.Situation)
		if sit.Valid() {
			filters.Situation = &sit
		}
	}

	records, err := s.repo.Request.Search(ctx, filters)
	if err != nil {
		s.logger.Error("register search failed", zap.Error(err))
		return nil, err
	}
	return s.toSummaries(records), nil
}

// ────────────────────── transitions ──────────────────────

// Triage: AI → BI. Intake staff route the request to the unit holding the
// information.
func (s *requestService) Triage(ctx context.Context, accountID, role, id string, req *dto.TriageRequest) (*dto.RequestDetailResponse, error) {
	actor, routing, err := s.staffContext(ctx, accountID, role)
	if err != nil {
		return nil, err
	}

	// the target unit must exist
	if _, err := s.repo.Unit.GetByID(ctx, req.SourceUnitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}

	return s.applyTransition(ctx, id, actor, func(record *model.InfoRequest) error {
		if record.Situation != model.SituationIntake {
			return ErrForbidden
		}
		if !routing.Authorizes(actor.Staff.UnitID, model.ResponsibilityIntake) {
			return ErrForbidden
		}

		now := s.now()
		record.SourceUnitID = &req.SourceUnitID
		record.RoutedAt = &now
		record.TriagedByID = &actor.Staff.StaffID
		record.Situation = model.SituationSourcing
		return nil
	})
}

// Fulfill: BI → EP. Staff of the routed unit attach the information.
func (s *requestService) Fulfill(ctx context.Context, accountID, role, id string, req *dto.FulfillRequest, attachmentName string, attachment io.Reader) (*dto.RequestDetailResponse, error) {
	actor, _, err := s.staffContext(ctx, accountID, role)
	if err != nil {
		return nil, err
	}

	var attachmentPath *string
	if attachment != nil {
		path, err := s.saveAttachment(attachmentName, attachment)
		if err != nil {
			return nil, err
		}
		attachmentPath = &path
	}

	detail, err := s.applyTransition(ctx, id, actor, func(record *model.InfoRequest) error {
		if record.Situation != model.SituationSourcing {
			return ErrForbidden
		}
		if record.SourceUnitID == nil || *record.SourceUnitID != actor.Staff.UnitID {
			return ErrForbidden
		}

		now := s.now()
		if attachmentPath != nil {
			record.AttachmentPath = attachmentPath
		}
		if req.Observations != "" {
			record.Observations = &req.Observations
		}
		record.FulfilledAt = &now
		record.FulfilledByID = &actor.Staff.StaffID
		record.Situation = model.SituationDraftingOpine
		return nil
	})
	if err != nil {
		// the stored file must not outlive a rejected transition
		if attachmentPath != nil {
			os.Remove(*attachmentPath)
		}
		return nil, err
	}
	return detail, nil
}

// Opine: EP → DR. The opinion unit records the written opinion.
func (s *requestService) Opine(ctx context.Context, accountID, role, id string, req *dto.OpinionRequest) (*dto.RequestDetailResponse, error) {
	actor, routing, err := s.staffContext(ctx, accountID, role)
	if err != nil {
		return nil, err
	}

	return s.applyTransition(ctx, id, actor, func(record *model.InfoRequest) error {
		if record.Situation != model.SituationDraftingOpine {
			return ErrForbidden
		}
		if !routing.Authorizes(actor.Staff.UnitID, model.ResponsibilityOpinion) {
			return ErrForbidden
		}

		now := s.now()
		record.Opinion = &req.Opinion
		record.OpinionAt = &now
		record.OpinionByID = &actor.Staff.StaffID
		record.Situation = model.SituationDecidingAnswer
		return nil
	})
}

// DecideInitial: DR → PR. The response unit grants or denies; a denial
// requires a justification, checked before anything is stamped.
func (s *requestService) DecideInitial(ctx context.Context, accountID, role, id string, req *dto.DecisionRequest) (*dto.RequestDetailResponse, error) {
	actor, routing, err := s.staffContext(ctx, accountID, role)
	if err != nil {
		return nil, err
	}

	granted, justification, err := validateDecision(req)
	if err != nil {
		return nil, err
	}

	return s.applyTransition(ctx, id, actor, func(record *model.InfoRequest) error {
		if record.Situation != model.SituationDecidingAnswer {
			return ErrForbidden
		}
		if !routing.Authorizes(actor.Staff.UnitID, model.ResponsibilityResponse) {
			return ErrForbidden
		}

		now := s.now()
		record.InitialGranted = granted
		record.InitialJustification = justification
		record.InitialDecidedAt = &now
		record.InitialDecidedByID = &actor.Staff.StaffID
		record.Situation = model.SituationAnswered
		return nil
	})
}

// FileFirstAppeal: PR → AR. Only the original requester, inside the first
// appeal window.
func (s *requestService) FileFirstAppeal(ctx context.Context, accountID, role, id string, req *dto.AppealRequest) (*dto.RequestDetailResponse, error) {
	actor, err := s.actors.Resolve(ctx, accountID, role)
	if err != nil {
		return nil, err
	}
	if !actor.IsCitizen() {
		return nil, ErrForbidden
	}

	return s.applyTransition(ctx, id, actor, func(record *model.InfoRequest) error {
		if record.RequesterID != actor.Citizen.CitizenID {
			return ErrForbidden
		}
		if !record.CanFileFirstAppeal(s.now()) {
			return ErrForbidden
		}

		now := s.now()
		record.FirstAppealText = &req.Text
		record.FirstAppealAt = &now
		record.Situation = model.SituationFirstAppeal
		return nil
	})
}

// DecideFirstAppeal: AR → RR.
func (s *requestService) DecideFirstAppeal(ctx context.Context, accountID, role, id string, req *dto.DecisionRequest) (*dto.RequestDetailResponse, error) {
	actor, routing, err := s.staffContext(ctx, accountID, role)
	if err != nil {
		return nil, err
	}

	granted, justification, err := validateDecision(req)
	if err != nil {
		return nil, err
	}

	return s.applyTransition(ctx, id, actor, func(record *model.InfoRequest) error {
		if record.Situation != model.SituationFirstAppeal {
			return ErrForbidden
		}
		if !routing.Authorizes(actor.Staff.UnitID, model.ResponsibilityFirstAppeal) {
			return ErrForbidden
		}

		now := s.now()
		record.FirstAppealGranted = granted
		record.FirstAppealJustification = justification
		record.FirstAppealDecidedAt = &now
		record.FirstAppealDecidedByID = &actor.Staff.StaffID
		record.Situation = model.SituationFirstAnswered
		return nil
	})
}

// FileSecondAppeal: RR → AF.
func (s *requestService) FileSecondAppeal(ctx context.Context, accountID, role, id string, req *dto.AppealRequest) (*dto.RequestDetailResponse, error) {
	actor, err := s.actors.Resolve(ctx, accountID, role)
	if err != nil {
		return nil, err
	}
	if !actor.IsCitizen() {
		return nil, ErrForbidden
	}

	return s.applyTransition(ctx, id, actor, func(record *model.InfoRequest) error {
		if record.RequesterID != actor.Citizen.CitizenID {
			return ErrForbidden
		}
		if !record.CanFileSecondAppeal(s.now()) {
			return ErrForbidden
		}

		now := s.now()
		record.SecondAppealText = &req.Text
		record.SecondAppealAt = &now
		record.Situation = model.SituationSecondAppeal
		return nil
	})
}

// DecideSecondAppeal: AF → RF, the terminal state.
func (s *requestService) DecideSecondAppeal(ctx context.Context, accountID, role, id string, req *dto.DecisionRequest) (*dto.RequestDetailResponse, error) {
	actor, routing, err := s.staffContext(ctx, accountID, role)
	if err != nil {
		return nil, err
	}

	granted, justification, err := validateDecision(req)
	if err != nil {
		return nil, err
	}

	return s.applyTransition(ctx, id, actor, func(record *model.InfoRequest) error {
		if record.Situation != model.SituationSecondAppeal {
			return ErrForbidden
		}
		if !routing.Authorizes(actor.Staff.UnitID, model.ResponsibilitySecondAppeal) {
			return ErrForbidden
		}

		now := s.now()
		record.SecondAppealGranted = granted
		record.SecondAppealJustification = justification
		record.SecondAppealDecidedAt = &now
		record.SecondAppealDecidedByID = &actor.Staff.StaffID
		record.Situation = model.SituationFinal
		return nil
	})
}

// ── internal helpers ──

func (s *requestService) getRecord(ctx context.Context, id string) (*model.InfoRequest, error) {
	record, err := s.repo.Request.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("loading request failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return record, nil
}

// staffContext resolves the actor and the routing configuration; non-staff
// actors are rejected outright.
func (s *requestService) staffContext(ctx context.Context, accountID, role string) (*Actor, *model.RoutingConfig, error) {
	actor, err := s.actors.Resolve(ctx, accountID, role)
	if err != nil {
		return nil, nil, err
	}
	if !actor.IsStaff() {
		return nil, nil, ErrForbidden
	}
	routing, err := s.repo.RoutingConfig.Get(ctx)
	if err != nil {
		return nil, nil, err
	}
	return actor, routing, nil
}

// applyTransition runs mutate against the locked record; the repository
// rolls everything back when the guard inside mutate fails, so a rejected
// transition leaves the record untouched.
func (s *requestService) applyTransition(ctx context.Context, id string, actor *Actor, mutate func(record *model.InfoRequest) error) (*dto.RequestDetailResponse, error) {
	updated, err := s.repo.Request.Transition(ctx, id, func(record *model.InfoRequest) (*model.RequestEvent, error) {
		from := record.Situation
		if err := mutate(record); err != nil {
			return nil, err
		}
		event := &model.RequestEvent{
			RequestID:     record.RequestID,
			FromSituation: &from,
			ToSituation:   record.Situation,
			OccurredAt:    s.now(),
		}
		if actor.AccountID != "" {
			accountID := actor.AccountID
			event.ActorAccountID = &accountID
		}
		return event, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return s.toDetail(ctx, updated, actor), nil
}

// validateDecision enforces the justification rule shared by all three
// decision tiers: denial requires a non-blank justification.
func validateDecision(req *dto.DecisionRequest) (bool, *string, error) {
	granted := req.Granted != nil && *req.Granted
	if granted {
		if req.Justification == "" {
			return true, nil, nil
		}
		justification := req.Justification
		return true, &justification, nil
	}
	if strings.TrimSpace(req.Justification) == "" {
		return false, nil, ErrJustificationRequired
	}
	justification := req.Justification
	return false, &justification, nil
}

func (s *requestService) saveAttachment(name string, r io.Reader) (string, error) {
	dir := s.cfg.Storage.UploadDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}

	filename := uuid.New().String() + "_" + filepath.Base(name)
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating attachment file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(r, maxAttachmentSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing attachment: %w", err)
	}
	if n > maxAttachmentSize {
		os.Remove(path)
		return "", ErrAttachmentTooLarge
	}

	return path, nil
}

// ── response mapping ──

func protocol(record *model.InfoRequest) string {
	return fmt.Sprintf("%d/%d", record.RegistrationNumber, record.RegistrationYear)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func (s *requestService) toSummaries(records []model.InfoRequest) []dto.RequestSummaryResponse {
	result := make([]dto.RequestSummaryResponse, 0, len(records))
	for i := range records {
		r := &records[i]
		summary := dto.RequestSummaryResponse{
			ID:             r.RequestID,
			Protocol:       protocol(r),
			Title:          r.Title,
			Situation:      string(r.Situation),
			SituationLabel: r.Situation.Label(),
			SubmittedAt:    r.SubmittedAt.Format(time.RFC3339),
		}
		if r.Requester != nil {
			summary.RequesterName = r.Requester.Name
		}
		result = append(result, summary)
	}
	return result
}

func (s *requestService) toDetail(ctx context.Context, record *model.InfoRequest, actor *Actor) *dto.RequestDetailResponse {
	now := s.now()
	detail := &dto.RequestDetailResponse{
		ID:                  record.RequestID,
		Protocol:            protocol(record),
		Situation:           string(record.Situation),
		SituationLabel:      record.Situation.Label(),
		Title:               record.Title,
		Description:         record.Description,
		SubmittedAt:         record.SubmittedAt.Format(time.RFC3339),
		RoutedAt:            formatTime(record.RoutedAt),
		Observations:        strVal(record.Observations),
		AttachmentPath:      strVal(record.AttachmentPath),
		FulfilledAt:         formatTime(record.FulfilledAt),
		Opinion:             strVal(record.Opinion),
		OpinionAt:           formatTime(record.OpinionAt),
		CanFileFirstAppeal:  record.CanFileFirstAppeal(now),
		CanFileSecondAppeal: record.CanFileSecondAppeal(now),
	}

	if record.Requester != nil {
		detail.RequesterName = record.Requester.Name
	}
	if record.SourceUnit != nil {
		detail.SourceUnit = &dto.UnitResponse{
			ID:           record.SourceUnit.UnitID,
			Name:         record.SourceUnit.Name,
			Abbreviation: record.SourceUnit.Abbreviation,
			IsActive:     record.SourceUnit.IsActive,
		}
	}

	if record.InitialDecidedAt != nil {
		detail.InitialDecision = &dto.DecisionView{
			Granted:       record.InitialGranted,
			Justification: strVal(record.InitialJustification),
			DecidedAt:     formatTime(record.InitialDecidedAt),
			DecidedBy:     strVal(record.InitialDecidedByID),
		}
	}

	if record.FirstAppealDeadline != nil || record.FirstAppealAt != nil {
		appeal := &dto.AppealView{
			Deadline: formatTime(record.FirstAppealDeadline),
			Text:     strVal(record.FirstAppealText),
			FiledAt:  formatTime(record.FirstAppealAt),
		}
		if record.FirstAppealDecidedAt != nil {
			appeal.Decision = &dto.DecisionView{
				Granted:       record.FirstAppealGranted,
				Justification: strVal(record.FirstAppealJustification),
				DecidedAt:     formatTime(record.FirstAppealDecidedAt),
				DecidedBy:     strVal(record.FirstAppealDecidedByID),
			}
		}
		detail.FirstAppeal = appeal
	}

	if record.SecondAppealDeadline != nil || record.SecondAppealAt != nil {
		appeal := &dto.AppealView{
			Deadline: formatTime(record.SecondAppealDeadline),
			Text:     strVal(record.SecondAppealText),
			FiledAt:  formatTime(record.SecondAppealAt),
		}
		if record.SecondAppealDecidedAt != nil {
			appeal.Decision = &dto.DecisionView{
				Granted:       record.SecondAppealGranted,
				Justification: strVal(record.SecondAppealJustification),
				DecidedAt:     formatTime(record.SecondAppealDecidedAt),
				DecidedBy:     strVal(record.SecondAppealDecidedByID),
			}
		}
		detail.SecondAppeal = appeal
	}

	events, err := s.repo.Request.ListEvents(ctx, record.RequestID)
	if err != nil {
		s.logger.Warn("loading request events failed",
			zap.String("request_id", record.RequestID), zap.Error(err))
	} else {
		for _, e := range events {
			ev := dto.RequestEventResponse{
				To:         string(e.ToSituation),
				OccurredAt: e.OccurredAt.Format(time.RFC3339),
			}
			if e.FromSituation != nil {
				ev.From = string(*e.FromSituation)
			}
			detail.Events = append(detail.Events, ev)
		}
	}

	return detail
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
