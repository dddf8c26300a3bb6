package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minute-market/internal/domain/money"
	"minute-market/internal/domain/token"
	"minute-market/internal/domain/user"
	"minute-market/internal/pkg/clock"
	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/shared"
)

type MintResult struct {
	Minted    int64
	Year      int
	UnitPrice decimal.Decimal
	Version   int64
}

type PriceResult struct {
	UnitPrice decimal.Decimal
	Version   int64
	Repriced  int64
}

type CreateClientRequest struct {
	Email    string
	Password string
	Username string
}

type CreateClientResult struct {
	UserID   uuid.UUID
	Subject  string
	Username string
	Email    string
}

type AdminCommands interface {
	Mint(ctx context.Context, quantity int, price decimal.Decimal, year int) (*MintResult, error)
	SetPrice(ctx context.Context, price decimal.Decimal, repriceTreasury bool) (*PriceResult, error)
	CreateClient(ctx context.Context, req CreateClientRequest) (*CreateClientResult, error)
}

type adminUseCaseImpl struct {
	uow       shared.UnitOfWork
	directory IdentityDirectory
	clock     clock.Clock
	logger    *slog.Logger
	market    config.MarketConfig
	suffix    func() int
}

func NewAdminUseCase(uow shared.UnitOfWork, directory IdentityDirectory, clk clock.Clock, logger *slog.Logger, cfg config.Config) AdminCommands {
	return &adminUseCaseImpl{
		uow:       uow,
		directory: directory,
		clock:     clk,
		logger:    logger,
		market:    cfg.Market,
		suffix:    user.RandomSuffix,
	}
}

// Mint adds quantity fresh tokens to the treasury and makes price the current unit price.
func (uc *adminUseCaseImpl) Mint(ctx context.Context, quantity int, price decimal.Decimal, year int) (*MintResult, error) {
	price, err := money.Positive(price)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	if year == 0 {
		year = now.Year()
	}
	minutes := uc.market.MintMinutes
	if minutes <= 0 {
		minutes = token.DefaultMinutes
	}
	tokens, err := token.Mint(quantity, year, minutes, price, now)
	if err != nil {
		return nil, err
	}

	res := MintResult{Year: year, UnitPrice: price}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Tokens().Insert(ctx, tokens)
		if err != nil {
			return err
		}
		st, err := tx.Settings().SetPrice(ctx, price, now)
		if err != nil {
			return err
		}
		res.Minted = n
		res.Version = st.Version
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "tokens minted", "year", year, "count", res.Minted, "unit_price", money.Format(price))
	return &res, nil
}

func (uc *adminUseCaseImpl) SetPrice(ctx context.Context, price decimal.Decimal, repriceTreasury bool) (*PriceResult, error) {
	price, err := money.Positive(price)
	if err != nil {
		return nil, err
	}

	var res PriceResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		st, err := tx.Settings().SetPrice(ctx, price, now)
		if err != nil {
			return err
		}
		res = PriceResult{UnitPrice: st.UnitPrice, Version: st.Version}
		if repriceTreasury {
			n, err := tx.Tokens().RepriceTreasury(ctx, price, now)
			if err != nil {
				return err
			}
			res.Repriced = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "unit price updated", "unit_price", money.Format(price), "version", res.Version, "repriced", res.Repriced)
	return &res, nil
}

// CreateClient provisions a directory user, trying the normalized username
// first and then random-suffix variants while the directory reports the
// username as taken.
func (uc *adminUseCaseImpl) CreateClient(ctx context.Context, req CreateClientRequest) (*CreateClientResult, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}

	base := user.UsernameBase(req.Username, email.Value())
	var (
		created *DirectoryUser
		lastErr error
	)
	for _, candidate := range user.UsernameCandidates(base, user.UsernameAttempts, uc.suffix) {
		created, lastErr = uc.directory.CreateUser(ctx, DirectoryUserParams{
			Email:    email.Value(),
			Password: req.Password,
			Username: candidate,
		})
		if lastErr == nil {
			break
		}
		if !errs.Is(lastErr, user.ErrUsernameTaken) {
			break
		}
		uc.logger.InfoContext(ctx, "username taken, retrying", "username", candidate)
	}
	if lastErr != nil {
		if errs.KindOf(lastErr) == errs.KindInternal {
			lastErr = errs.Mark(lastErr, errs.ErrUpstream)
		}
		return nil, lastErr
	}

	u, err := user.NewUser(created.Subject, &email, user.RoleClient, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err = tx.Users().Ensure(ctx, u)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "client created", "user_id", u.ID(), "username", created.Username)
	return &CreateClientResult{
		UserID:   u.ID(),
		Subject:  created.Subject,
		Username: created.Username,
		Email:    email.Value(),
	}, nil
}
