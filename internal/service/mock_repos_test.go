package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/proj-int-univesp/lai-cmg/internal/model"
	"github.com/proj-int-univesp/lai-cmg/internal/repository"
)

// ── Mock AccountRepository ──

type mockAccountRepo struct {
	accounts map[string]*model.Account
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[string]*model.Account)}
}

func (m *mockAccountRepo) Create(_ context.Context, account *model.Account) error {
	if account.AccountID == "" {
		account.AccountID = "acc-" + account.Username
	}
	m.accounts[account.AccountID] = account
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id string) (*model.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) GetByUsername(_ context.Context, username string) (*model.Account, error) {
	for _, a := range m.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) Update(_ context.Context, account *model.Account) error {
	m.accounts[account.AccountID] = account
	return nil
}

// ── Mock CitizenRepository ──

type mockCitizenRepo struct {
	accounts *mockAccountRepo
	citizens map[string]*model.Citizen
}

func newMockCitizenRepo(accounts *mockAccountRepo) *mockCitizenRepo {
	return &mockCitizenRepo{accounts: accounts, citizens: make(map[string]*model.Citizen)}
}

func (m *mockCitizenRepo) CreateWithAccount(ctx context.Context, account *model.Account, citizen *model.Citizen) error {
	if err := m.accounts.Create(ctx, account); err != nil {
		return err
	}
	if citizen.CitizenID == "" {
		citizen.CitizenID = "cit-" + account.Username
	}
	accountID := account.AccountID
	citizen.AccountID = &accountID
	m.citizens[citizen.CitizenID] = citizen
	return nil
}

func (m *mockCitizenRepo) GetByID(_ context.Context, id string) (*model.Citizen, error) {
	if c, ok := m.citizens[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCitizenRepo) GetByAccountID(_ context.Context, accountID string) (*model.Citizen, error) {
	for _, c := range m.citizens {
		if c.AccountID != nil && *c.AccountID == accountID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCitizenRepo) Update(_ context.Context, citizen *model.Citizen) error {
	m.citizens[citizen.CitizenID] = citizen
	return nil
}

// ── Mock StaffRepository ──

type mockStaffRepo struct {
	accounts *mockAccountRepo
	members  map[string]*model.StaffMember
	units    *mockUnitRepo
}

func newMockStaffRepo(accounts *mockAccountRepo) *mockStaffRepo {
	return &mockStaffRepo{accounts: accounts, members: make(map[string]*model.StaffMember)}
}

func (m *mockStaffRepo) CreateWithAccount(ctx context.Context, account *model.Account, staff *model.StaffMember) error {
	if err := m.accounts.Create(ctx, account); err != nil {
		return err
	}
	if staff.StaffID == "" {
		staff.StaffID = "stf-" + staff.Registration
	}
	accountID := account.AccountID
	staff.AccountID = &accountID
	m.members[staff.StaffID] = staff
	return nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, id string) (*model.StaffMember, error) {
	s, ok := m.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if s.Unit == nil && m.units != nil {
		if u, ok := m.units.units[s.UnitID]; ok {
			s.Unit = u
		}
	}
	return s, nil
}

func (m *mockStaffRepo) GetByAccountID(_ context.Context, accountID string) (*model.StaffMember, error) {
	for _, s := range m.members {
		if s.AccountID != nil && *s.AccountID == accountID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) GetByRegistration(_ context.Context, registration string) (*model.StaffMember, error) {
	for _, s := range m.members {
		if s.Registration == registration {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) List(_ context.Context, offset, limit int) ([]model.StaffMember, int64, error) {
	var all []model.StaffMember
	for _, s := range m.members {
		all = append(all, *s)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockStaffRepo) Update(_ context.Context, staff *model.StaffMember) error {
	m.members[staff.StaffID] = staff
	return nil
}

func (m *mockStaffRepo) Delete(_ context.Context, id string) error {
	delete(m.members, id)
	return nil
}

// ── Mock UnitRepository ──

type mockUnitRepo struct {
	units map[string]*model.OrgUnit
	staff *mockStaffRepo
}

func newMockUnitRepo(staff *mockStaffRepo) *mockUnitRepo {
	return &mockUnitRepo{units: make(map[string]*model.OrgUnit), staff: staff}
}

func (m *mockUnitRepo) Create(_ context.Context, unit *model.OrgUnit) error {
	if unit.UnitID == "" {
		unit.UnitID = "unit-" + unit.Abbreviation
	}
	m.units[unit.UnitID] = unit
	return nil
}

func (m *mockUnitRepo) GetByID(_ context.Context, id string) (*model.OrgUnit, error) {
	if u, ok := m.units[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUnitRepo) GetByName(_ context.Context, name string) (*model.OrgUnit, error) {
	for _, u := range m.units {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUnitRepo) List(_ context.Context) ([]model.OrgUnit, error) {
	var result []model.OrgUnit
	for _, u := range m.units {
		if u.IsActive {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUnitRepo) ListAll(_ context.Context) ([]model.OrgUnit, error) {
	var result []model.OrgUnit
	for _, u := range m.units {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUnitRepo) Update(_ context.Context, unit *model.OrgUnit) error {
	m.units[unit.UnitID] = unit
	return nil
}

func (m *mockUnitRepo) Delete(_ context.Context, id string) error {
	delete(m.units, id)
	return nil
}

func (m *mockUnitRepo) CountStaff(_ context.Context, unitID string) (int64, error) {
	var count int64
	for _, s := range m.staff.members {
		if s.UnitID == unitID {
			count++
		}
	}
	return count, nil
}

// ── Mock RoutingConfigRepository ──

type mockRoutingConfigRepo struct {
	cfg *model.RoutingConfig
}

func newMockRoutingConfigRepo() *mockRoutingConfigRepo {
	return &mockRoutingConfigRepo{cfg: &model.RoutingConfig{Singleton: true}}
}

func (m *mockRoutingConfigRepo) Get(_ context.Context) (*model.RoutingConfig, error) {
	return m.cfg, nil
}

func (m *mockRoutingConfigRepo) Update(_ context.Context, cfg *model.RoutingConfig) error {
	cfg.Singleton = true
	m.cfg = cfg
	return nil
}

// ── Mock RequestCounterRepository ──

type mockRequestCounterRepo struct {
	counters map[int]int64
}

func newMockRequestCounterRepo() *mockRequestCounterRepo {
	return &mockRequestCounterRepo{counters: make(map[int]int64)}
}

func (m *mockRequestCounterRepo) Next(_ context.Context, year int) (int64, error) {
	m.counters[year]++
	return m.counters[year], nil
}

// ── Mock InfoRequestRepository ──

type mockRequestRepo struct {
	counters *mockRequestCounterRepo
	requests map[string]*model.InfoRequest
	events   []model.RequestEvent
	seq      int

	// createErrs is consumed one per Create call before the insert runs
	createErrs []error
}

func newMockRequestRepo(counters *mockRequestCounterRepo) *mockRequestRepo {
	return &mockRequestRepo{
		counters: counters,
		requests: make(map[string]*model.InfoRequest),
	}
}

func (m *mockRequestRepo) Create(ctx context.Context, req *model.InfoRequest) error {
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return err
		}
	}

	number, err := m.counters.Next(ctx, req.RegistrationYear)
	if err != nil {
		return err
	}
	req.RegistrationNumber = number

	m.seq++
	req.RequestID = fmt.Sprintf("req-%03d", m.seq)
	m.requests[req.RequestID] = req

	m.events = append(m.events, model.RequestEvent{
		RequestID:   req.RequestID,
		ToSituation: req.Situation,
		OccurredAt:  req.SubmittedAt,
	})
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id string) (*model.InfoRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequestRepo) Save(_ context.Context, req *model.InfoRequest) error {
	m.requests[req.RequestID] = req
	return nil
}

func (m *mockRequestRepo) Transition(_ context.Context, id string, fn func(req *model.InfoRequest) (*model.RequestEvent, error)) (*model.InfoRequest, error) {
	stored, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	// mutate a copy; commit only when fn succeeds, mirroring rollback
	candidate := *stored
	event, err := fn(&candidate)
	if err != nil {
		return nil, err
	}

	m.requests[id] = &candidate
	if event != nil {
		m.events = append(m.events, *event)
	}
	return &candidate, nil
}

func (m *mockRequestRepo) ListByRequester(_ context.Context, citizenID string) ([]model.InfoRequest, error) {
	var result []model.InfoRequest
	for _, r := range m.requests {
		if r.RequesterID == citizenID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result, nil
}

func (m *mockRequestRepo) ListBySituation(_ context.Context, situation model.Situation, _ string) ([]model.InfoRequest, error) {
	var result []model.InfoRequest
	for _, r := range m.requests {
		if r.Situation == situation {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedAt.Before(result[j].SubmittedAt)
	})
	return result, nil
}

func (m *mockRequestRepo) ListBySituationAndUnit(_ context.Context, situation model.Situation, unitID string) ([]model.InfoRequest, error) {
	var result []model.InfoRequest
	for _, r := range m.requests {
		if r.Situation == situation && r.SourceUnitID != nil && *r.SourceUnitID == unitID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRequestRepo) ListByYear(_ context.Context, year int) ([]model.InfoRequest, error) {
	var result []model.InfoRequest
	for _, r := range m.requests {
		if r.RegistrationYear == year {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RegistrationNumber < result[j].RegistrationNumber
	})
	return result, nil
}

func (m *mockRequestRepo) Search(_ context.Context, filters *repository.RequestSearchFilters) ([]model.InfoRequest, error) {
	var result []model.InfoRequest
	for _, r := range m.requests {
		if filters.Number != nil && r.RegistrationNumber != *filters.Number {
			continue
		}
		if filters.Year != nil && r.RegistrationYear != *filters.Year {
			continue
		}
		if filters.Situation != nil && r.Situation != *filters.Situation {
			continue
		}
		if filters.Title != "" && !strings.Contains(strings.ToLower(r.Title), strings.ToLower(filters.Title)) {
			continue
		}
		if filters.RequesterName != "" {
			if r.Requester == nil || !strings.Contains(strings.ToLower(r.Requester.Name), strings.ToLower(filters.RequesterName)) {
				continue
			}
		}
		if filters.SubmittedFrom != nil && r.SubmittedAt.Before(*filters.SubmittedFrom) {
			continue
		}
		if filters.SubmittedTo != nil && r.SubmittedAt.After(*filters.SubmittedTo) {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result, nil
}

func (m *mockRequestRepo) ListEvents(_ context.Context, requestID string) ([]model.RequestEvent, error) {
	var result []model.RequestEvent
	for _, e := range m.events {
		if e.RequestID == requestID {
			result = append(result, e)
		}
	}
	return result, nil
}
