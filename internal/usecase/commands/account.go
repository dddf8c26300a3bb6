package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"minute-market/internal/domain/device"
	"minute-market/internal/domain/user"
	"minute-market/internal/pkg/clock"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase"
	"minute-market/internal/usecase/shared"
)

type SyncUserResult struct {
	UserID  uuid.UUID
	Subject string
	Email   *string
	Role    user.Role
}

type AccountCommands interface {
	usecase.PrincipalResolver
	SyncUser(ctx context.Context, p usecase.Principal) (*SyncUserResult, error)
	RegisterDevice(ctx context.Context, userID uuid.UUID, voipToken string) (*device.Device, error)
}

type accountUseCaseImpl struct {
	uow       shared.UnitOfWork
	directory IdentityDirectory
	clock     clock.Clock
	logger    *slog.Logger
}

func NewAccountUseCase(uow shared.UnitOfWork, directory IdentityDirectory, clk clock.Clock, logger *slog.Logger) AccountCommands {
	return &accountUseCaseImpl{uow: uow, directory: directory, clock: clk, logger: logger}
}

// Resolve ensures the local user for a verified identity, refreshing its
// email and role from the identity provider.
func (uc *accountUseCaseImpl) Resolve(ctx context.Context, id usecase.Identity) (usecase.Principal, error) {
	role := id.Role
	if role == "" {
		role = user.RoleClient
	}
	email, err := user.OptionalEmail(id.Email)
	if err != nil {
		uc.logger.WarnContext(ctx, "ignoring malformed email from identity provider", "subject", id.Subject)
		email = nil
	}
	u, err := user.NewUser(id.Subject, email, role, uc.clock.Now())
	if err != nil {
		return usecase.Principal{}, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Users().FindBySubject(ctx, u.Subject())
		if err == nil && !needsRefresh(existing, u) {
			u = existing
			return nil
		}
		if err != nil && !errs.Is(err, errs.ErrNotFound) {
			return err
		}
		u, err = tx.Users().Ensure(ctx, u)
		return err
	})
	if err != nil {
		return usecase.Principal{}, err
	}
	return usecase.Principal{UserID: u.ID(), Subject: u.Subject(), Role: u.Role()}, nil
}

// SyncUser returns the caller's local account and pushes the client role to
// the identity directory when it is missing there.
func (uc *accountUseCaseImpl) SyncUser(ctx context.Context, p usecase.Principal) (*SyncUserResult, error) {
	var u *user.User
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		u, err = tx.Users().FindByID(ctx, p.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if u.Role() != user.RoleAdmin {
		detached(ctx, uc.logger, "directory_role_sync", func(ctx context.Context) error {
			return uc.directory.EnsureClientRole(ctx, u.Subject())
		})
	}
	return &SyncUserResult{UserID: u.ID(), Subject: u.Subject(), Email: u.EmailString(), Role: u.Role()}, nil
}

// RegisterDevice binds a VoIP token to userID. A token moves between users
// when the device changes hands.
func (uc *accountUseCaseImpl) RegisterDevice(ctx context.Context, userID uuid.UUID, voipToken string) (*device.Device, error) {
	d, err := device.New(userID, voipToken, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		removed, err := tx.Devices().RemoveTokenFromOthers(ctx, d.VoIPToken, userID)
		if err != nil {
			return err
		}
		if removed > 0 {
			uc.logger.InfoContext(ctx, "voip token moved between users", "user_id", userID, "removed", removed)
		}
		return tx.Devices().Upsert(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func needsRefresh(stored, seen *user.User) bool {
	if stored.Role() != seen.Role() {
		return true
	}
	return seen.Email() != nil && (stored.Email() == nil || stored.Email().Value() != seen.Email().Value())
}
