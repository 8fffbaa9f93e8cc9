package repository

import "gorm.io/gorm"

// Repository aggregates every repository behind one entry point.
type Repository struct {
	Account        AccountRepository
	Citizen        CitizenRepository
	Staff          StaffRepository
	Unit           UnitRepository
	RoutingConfig  RoutingConfigRepository
	RequestCounter RequestCounterRepository
	Request        InfoRequestRepository
}

// NewRepository builds the repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Account:        NewAccountRepo(db),
		Citizen:        NewCitizenRepo(db),
		Staff:          NewStaffRepo(db),
		Unit:           NewUnitRepo(db),
		RoutingConfig:  NewRoutingConfigRepo(db),
		RequestCounter: NewRequestCounterRepo(db),
		Request:        NewInfoRequestRepo(db),
	}
}
