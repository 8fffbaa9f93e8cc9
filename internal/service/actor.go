package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/proj-int-univesp/lai-cmg/internal/model"
	"github.com/proj-int-univesp/lai-cmg/internal/repository"
)

// ActorKind tags the variants of Actor.
type ActorKind int

const (
	ActorAnonymous ActorKind = iota
	ActorCitizen
	ActorStaff
)

// Actor is the resolved acting identity: a tagged variant rather than a
// probe-for-attributes check. Exactly one of Citizen and Staff is non-nil,
// matching the kind; for staff the Unit association is loaded.
type Actor struct {
	Kind      ActorKind
	AccountID string
	Citizen   *model.Citizen
	Staff     *model.StaffMember
}

// IsCitizen reports whether the actor is a citizen with a profile.
func (a *Actor) IsCitizen() bool { return a.Kind == ActorCitizen && a.Citizen != nil }

// IsStaff reports whether the actor is a staff member.
func (a *Actor) IsStaff() bool { return a.Kind == ActorStaff && a.Staff != nil }

// ActorResolver turns an authenticated account into an Actor.
type ActorResolver interface {
	Resolve(ctx context.Context, accountID, role string) (*Actor, error)
}

type actorResolver struct {
	repo *repository.Repository
}

// NewActorResolver creates the repository-backed ActorResolver.
func NewActorResolver(repo *repository.Repository) ActorResolver {
	return &actorResolver{repo: repo}
}

// Resolve loads the profile matching the account's role claim. An account
// with no matching profile (or no account at all) resolves to Anonymous
// rather than an error: anonymous actors simply fail every guard.
func (r *actorResolver) Resolve(ctx context.Context, accountID, role string) (*Actor, error) {
	if accountID == "" {
		return &Actor{Kind: ActorAnonymous}, nil
	}

	switch role {
	case model.RoleCitizen:
		citizen, err := r.repo.Citizen.GetByAccountID(ctx, accountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &Actor{Kind: ActorAnonymous, AccountID: accountID}, nil
			}
			return nil, err
		}
		return &Actor{Kind: ActorCitizen, AccountID: accountID, Citizen: citizen}, nil

	case model.RoleStaff:
		staff, err := r.repo.Staff.GetByAccountID(ctx, accountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &Actor{Kind: ActorAnonymous, AccountID: accountID}, nil
			}
			return nil, err
		}
		return &Actor{Kind: ActorStaff, AccountID: accountID, Staff: staff}, nil
	}

	return &Actor{Kind: ActorAnonymous, AccountID: accountID}, nil
}
