package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/hubgate/internal/config"
	"github.com/allisson/hubgate/internal/identity/domain"
	identityService "github.com/allisson/hubgate/internal/identity/service"
)

// tokenUseCase implements TokenUseCase.
type tokenUseCase struct {
	config       *config.Config
	userRepo     UserRepository
	serviceRepo  ServiceRepository
	tokenRepo    TokenRepository
	tokenService identityService.TokenService
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	cfg *config.Config,
	userRepo UserRepository,
	serviceRepo ServiceRepository,
	tokenRepo TokenRepository,
	tokenService identityService.TokenService,
) TokenUseCase {
	return &tokenUseCase{
		config:       cfg,
		userRepo:     userRepo,
		serviceRepo:  serviceRepo,
		tokenRepo:    tokenRepo,
		tokenService: tokenService,
	}
}

// Issue verifies the owner exists, generates a new token with expiration from
// config, stores its hash and returns the plain token. The plain token is only
// returned once.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	input *domain.IssueTokenInput,
) (*domain.IssueTokenOutput, error) {
	if err := t.verifyOwner(ctx, input.OwnerKind, input.OwnerName); err != nil {
		return nil, err
	}

	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	token := &domain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		OwnerKind: input.OwnerKind,
		OwnerName: input.OwnerName,
		ExpiresAt: time.Now().UTC().Add(t.config.TokenExpiration),
		RevokedAt: nil,
		CreatedAt: time.Now().UTC(),
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &domain.IssueTokenOutput{
		ID:         token.ID,
		PlainToken: plainToken,
	}, nil
}

// Authenticate validates a token hash and returns the token principal with its
// owner reference resolved.
//
// Returns ErrInvalidCredentials for unknown, expired or revoked tokens and for
// tokens whose owner record no longer exists, so a caller probing with made-up
// tokens learns nothing about which of those cases applied.
func (t *tokenUseCase) Authenticate(ctx context.Context, tokenHash string) (domain.Principal, error) {
	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return domain.Principal{}, domain.ErrInvalidCredentials
		}
		return domain.Principal{}, err
	}

	if token.ExpiresAt.Before(time.Now().UTC()) {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	if token.RevokedAt != nil {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	owner, err := t.ownerPrincipal(ctx, token.OwnerKind, token.OwnerName)
	if err != nil {
		return domain.Principal{}, err
	}

	return domain.TokenPrincipal(token.ID.String(), owner), nil
}

// DeleteExpired removes tokens whose expiration has passed and returns how
// many were deleted.
func (t *tokenUseCase) DeleteExpired(ctx context.Context) (int64, error) {
	return t.tokenRepo.DeleteExpired(ctx)
}

// verifyOwner checks the owner record exists before a token is issued for it.
func (t *tokenUseCase) verifyOwner(ctx context.Context, kind domain.PrincipalKind, name string) error {
	switch kind {
	case domain.PrincipalUser:
		_, err := t.userRepo.GetByName(ctx, name)
		return err
	case domain.PrincipalService:
		_, err := t.serviceRepo.GetByName(ctx, name)
		return err
	default:
		return domain.ErrInvalidCredentials
	}
}

// ownerPrincipal resolves a token's owner reference into a principal.
func (t *tokenUseCase) ownerPrincipal(ctx context.Context, kind domain.PrincipalKind, name string) (domain.Principal, error) {
	switch kind {
	case domain.PrincipalUser:
		if _, err := t.userRepo.GetByName(ctx, name); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return domain.Principal{}, domain.ErrInvalidCredentials
			}
			return domain.Principal{}, err
		}
		return domain.UserPrincipal(name), nil
	case domain.PrincipalService:
		if _, err := t.serviceRepo.GetByName(ctx, name); err != nil {
			if errors.Is(err, domain.ErrServiceNotFound) {
				return domain.Principal{}, domain.ErrInvalidCredentials
			}
			return domain.Principal{}, err
		}
		return domain.ServicePrincipal(name), nil
	default:
		return domain.Principal{}, domain.ErrInvalidCredentials
	}
}
