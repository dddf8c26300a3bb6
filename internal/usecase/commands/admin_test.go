//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"minute-market/internal/domain/token"
	"minute-market/internal/domain/user"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/commands"
	commandsmock "minute-market/tests/mock/commands"
)

type AdminUseCaseTestSuite struct {
	suite.Suite
	ctx       context.Context
	f         *fixture
	mockCtrl  *gomock.Controller
	directory *commandsmock.MockIdentityDirectory
	uc        commands.AdminCommands
}

func (s *AdminUseCaseTestSuite) SetupSubTest() {
	s.ctx = context.Background()
	s.f = newFixture()
	s.mockCtrl = gomock.NewController(s.T())
	s.directory = commandsmock.NewMockIdentityDirectory(s.mockCtrl)
	s.uc = commands.NewAdminUseCase(s.f.store, s.directory, s.f.clock, s.f.logger, s.f.cfg)
}

func TestAdminUseCaseSuite(t *testing.T) {
	suite.Run(t, new(AdminUseCaseTestSuite))
}

func (s *AdminUseCaseTestSuite) TestMint() {
	s.Run("正常系: treasury tokens and a new price version", func() {
		res, err := s.uc.Mint(s.ctx, 4, decimal.RequireFromString("2.50"), 2026)

		s.Require().NoError(err)
		s.Equal(int64(4), res.Minted)
		s.Equal(2026, res.Year)
		s.Equal(int64(1), res.Version)

		tokens := s.f.store.Tokens()
		s.Require().Len(tokens, 4)
		for _, tk := range tokens {
			s.True(tk.Purchasable())
			s.Equal(2026, tk.IssuedYear)
			s.Equal(s.f.cfg.Market.MintMinutes, tk.RemainingMinutes)
		}
		s.True(decimal.RequireFromString("2.50").Equal(s.f.store.Settings().UnitPrice))
	})

	s.Run("正常系: year 0 mints for the current year", func() {
		res, err := s.uc.Mint(s.ctx, 1, decimal.RequireFromString("1.00"), 0)

		s.Require().NoError(err)
		s.Equal(s.f.clock.Now().Year(), res.Year)
	})

	s.Run("異常系: invalid input mints nothing", func() {
		_, err := s.uc.Mint(s.ctx, 0, decimal.RequireFromString("1.00"), 2025)
		s.True(errs.Is(err, token.ErrInvalidQuantity))

		_, err = s.uc.Mint(s.ctx, 1, decimal.Zero, 2025)
		s.True(errs.Is(err, errs.ErrValidation))

		s.Empty(s.f.store.Tokens())
	})
}

func (s *AdminUseCaseTestSuite) TestSetPrice() {
	s.Run("正常系: version increases on every change", func() {
		first, err := s.uc.SetPrice(s.ctx, decimal.RequireFromString("3.00"), false)
		s.Require().NoError(err)
		second, err := s.uc.SetPrice(s.ctx, decimal.RequireFromString("3.50"), false)
		s.Require().NoError(err)

		s.Greater(second.Version, first.Version)
		s.Zero(second.Repriced)
	})

	s.Run("正常系: treasury repricing leaves held tokens alone", func() {
		buyer := s.f.user(s.T(), "buyer")
		s.f.mint(s.T(), 3, 2025)
		held := s.f.owned(s.T(), buyer, 2025)

		res, err := s.uc.SetPrice(s.ctx, decimal.RequireFromString("9.00"), true)

		s.Require().NoError(err)
		s.Equal(int64(3), res.Repriced)
		s.True(unitPrice.Equal(s.f.store.Token(held.ID).OriginalPrice))
	})
}

func (s *AdminUseCaseTestSuite) TestCreateClient() {
	s.Run("正常系: local user bound to the directory subject", func() {
		s.directory.EXPECT().
			CreateUser(gomock.Any(), commands.DirectoryUserParams{Email: "alice@example.com", Password: "s3cret-pass", Username: "alice"}).
			Return(&commands.DirectoryUser{Subject: "user_alice", Username: "alice", Email: "alice@example.com"}, nil)

		res, err := s.uc.CreateClient(s.ctx, commands.CreateClientRequest{Email: "alice@example.com", Password: "s3cret-pass"})

		s.Require().NoError(err)
		s.Equal("user_alice", res.Subject)
		u := s.f.store.UserBySubject("user_alice")
		s.Require().NotNil(u)
		s.Equal(user.RoleClient, u.Role())
		s.Equal(res.UserID, u.ID())
	})

	s.Run("正常系: taken username is retried with a suffix", func() {
		gomock.InOrder(
			s.directory.EXPECT().
				CreateUser(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, p commands.DirectoryUserParams) (*commands.DirectoryUser, error) {
					s.Equal("bob", p.Username)
					return nil, errs.Mark(errs.New("taken"), user.ErrUsernameTaken)
				}),
			s.directory.EXPECT().
				CreateUser(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, p commands.DirectoryUserParams) (*commands.DirectoryUser, error) {
					s.Regexp(`^bob\d{4}$`, p.Username)
					return &commands.DirectoryUser{Subject: "user_bob", Username: p.Username, Email: p.Email}, nil
				}),
		)

		res, err := s.uc.CreateClient(s.ctx, commands.CreateClientRequest{Email: "bob@example.com", Username: "Bob"})

		s.Require().NoError(err)
		s.Regexp(`^bob\d{4}$`, res.Username)
	})

	s.Run("異常系: every candidate taken", func() {
		s.directory.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("taken"), user.ErrUsernameTaken)).
			Times(user.UsernameAttempts)

		_, err := s.uc.CreateClient(s.ctx, commands.CreateClientRequest{Email: "carol@example.com"})

		s.True(errs.Is(err, user.ErrUsernameTaken))
		s.Nil(s.f.store.UserBySubject("user_carol"))
	})

	s.Run("異常系: directory failure is upstream", func() {
		s.directory.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			Return(nil, errs.New("connection refused"))

		_, err := s.uc.CreateClient(s.ctx, commands.CreateClientRequest{Email: "dave@example.com"})

		s.Equal(errs.KindUpstream, errs.KindOf(err))
	})

	s.Run("異常系: invalid email never reaches the directory", func() {
		_, err := s.uc.CreateClient(s.ctx, commands.CreateClientRequest{Email: "not-an-email"})

		s.True(errs.Is(err, user.ErrInvalidEmail))
	})
}
