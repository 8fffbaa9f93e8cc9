package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/proj-int-univesp/lai-cmg/internal/dto"
	"github.com/proj-int-univesp/lai-cmg/internal/model"
	"github.com/proj-int-univesp/lai-cmg/internal/repository"
	"github.com/proj-int-univesp/lai-cmg/pkg/jwt"
	"github.com/proj-int-univesp/lai-cmg/pkg/redis"
)

// ── auth module business errors ──

var (
	ErrUsernameExists     = errors.New("username already registered")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountNotFound    = errors.New("account not found")
)

// AuthService handles citizen self-registration, login, token refresh,
// logout and the profile endpoint.
type AuthService interface {
	RegisterCitizen(ctx context.Context, req *dto.RegisterCitizenRequest) (*dto.AccountResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, rawToken string) error
	Profile(ctx context.Context, accountID string) (*dto.ProfileResponse, error)
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates an AuthService instance. rdb may be nil: logout
// then degrades to a no-op instead of failing the whole service.
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// RegisterCitizen creates the account and the citizen profile in one
// transaction. The account carries the citizen role and can immediately
// submit requests.
func (s *authService) RegisterCitizen(ctx context.Context, req *dto.RegisterCitizenRequest) (*dto.AccountResponse, error) {
	if req.Password != req.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}

	if _, err := s.repo.Account.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("username lookup failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleCitizen,
	}
	citizen := &model.Citizen{
		Name:       req.Name,
		DocumentID: req.DocumentID,
		PostalCode: req.PostalCode,
		Street:     req.Street,
		Number:     req.Number,
		District:   req.District,
		City:       req.City,
		State:      req.State,
	}
	if req.Complement != "" {
		complement := req.Complement
		citizen.Complement = &complement
	}

	if err := s.repo.Citizen.CreateWithAccount(ctx, account, citizen); err != nil {
		s.logger.Error("citizen registration failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("citizen registered",
		zap.String("account_id", account.AccountID),
		zap.String("username", account.Username))

	return &dto.AccountResponse{
		ID:       account.AccountID,
		Username: account.Username,
		Email:    account.Email,
		Role:     account.Role,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	account, err := s.repo.Account.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("account lookup failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(account)
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	if s.rdb != nil && claims.ID != "" {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist check failed", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidToken
		}
	}

	account, err := s.repo.Account.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return s.issueTokens(account)
}

// Logout blacklists the presented access token until its natural expiry.
// Without redis the token simply ages out.
func (s *authService) Logout(ctx context.Context, rawToken string) error {
	if s.rdb == nil {
		return nil
	}

	claims, err := s.jwtMgr.ParseToken(rawToken)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("token blacklisting failed", zap.Error(err))
	}
	return nil
}

func (s *authService) Profile(ctx context.Context, accountID string) (*dto.ProfileResponse, error) {
	account, err := s.repo.Account.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		s.logger.Error("account lookup failed", zap.Error(err))
		return nil, err
	}

	profile := &dto.ProfileResponse{
		Kind: account.Role,
		Account: dto.AccountResponse{
			ID:       account.AccountID,
			Username: account.Username,
			Email:    account.Email,
			Role:     account.Role,
		},
	}

	switch account.Role {
	case model.RoleCitizen:
		citizen, err := s.repo.Citizen.GetByAccountID(ctx, accountID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if citizen != nil {
			profile.Kind = "citizen"
			summary := &dto.CitizenSummary{
				ID:         citizen.CitizenID,
				Name:       citizen.Name,
				DocumentID: citizen.DocumentID,
				PostalCode: citizen.PostalCode,
				Street:     citizen.Street,
				Number:     citizen.Number,
				District:   citizen.District,
				City:       citizen.City,
				State:      citizen.State,
			}
			if citizen.Complement != nil {
				summary.Complement = *citizen.Complement
			}
			profile.Citizen = summary
		}
	case model.RoleStaff, model.RoleAdmin:
		staff, err := s.repo.Staff.GetByAccountID(ctx, accountID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if staff != nil {
			profile.Kind = "staff"
			profile.Staff = toStaffResponse(staff)
		}
	}

	return profile, nil
}

func (s *authService) issueTokens(account *model.Account) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(account.AccountID, account.Role)
	if err != nil {
		s.logger.Error("access token generation failed", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(account.AccountID, account.Role)
	if err != nil {
		s.logger.Error("refresh token generation failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Account: dto.AccountResponse{
			ID:       account.AccountID,
			Username: account.Username,
			Email:    account.Email,
			Role:     account.Role,
		},
	}, nil
}
