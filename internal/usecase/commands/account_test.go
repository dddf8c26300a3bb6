//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"minute-market/internal/domain/user"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase"
	"minute-market/internal/usecase/commands"
	commandsmock "minute-market/tests/mock/commands"
)

type AccountUseCaseTestSuite struct {
	suite.Suite
	ctx       context.Context
	f         *fixture
	mockCtrl  *gomock.Controller
	directory *commandsmock.MockIdentityDirectory
	uc        commands.AccountCommands
}

func (s *AccountUseCaseTestSuite) SetupSubTest() {
	s.ctx = context.Background()
	s.f = newFixture()
	s.mockCtrl = gomock.NewController(s.T())
	s.directory = commandsmock.NewMockIdentityDirectory(s.mockCtrl)
	s.uc = commands.NewAccountUseCase(s.f.store, s.directory, s.f.clock, s.f.logger)
}

func TestAccountUseCaseSuite(t *testing.T) {
	suite.Run(t, new(AccountUseCaseTestSuite))
}

func (s *AccountUseCaseTestSuite) TestResolve() {
	s.Run("正常系: first sight creates the local user", func() {
		p, err := s.uc.Resolve(s.ctx, usecase.Identity{Subject: "user_1", Email: "one@example.com"})

		s.Require().NoError(err)
		s.Equal("user_1", p.Subject)
		s.Equal(user.RoleClient, p.Role)
		u := s.f.store.UserBySubject("user_1")
		s.Require().NotNil(u)
		s.Equal(p.UserID, u.ID())
	})

	s.Run("正常系: repeat calls keep the same user and pick up role changes", func() {
		first, err := s.uc.Resolve(s.ctx, usecase.Identity{Subject: "user_2"})
		s.Require().NoError(err)

		again, err := s.uc.Resolve(s.ctx, usecase.Identity{Subject: "user_2"})
		s.Require().NoError(err)
		s.Equal(first.UserID, again.UserID)

		promoted, err := s.uc.Resolve(s.ctx, usecase.Identity{Subject: "user_2", Role: user.RoleAdmin})
		s.Require().NoError(err)
		s.Equal(first.UserID, promoted.UserID)
		s.True(promoted.IsAdmin())
	})

	s.Run("境界値: malformed email is dropped", func() {
		p, err := s.uc.Resolve(s.ctx, usecase.Identity{Subject: "user_3", Email: "nope"})

		s.Require().NoError(err)
		s.Nil(s.f.store.UserBySubject("user_3").Email())
		s.Equal("user_3", p.Subject)
	})

	s.Run("異常系: empty subject", func() {
		_, err := s.uc.Resolve(s.ctx, usecase.Identity{Subject: " "})

		s.True(errs.Is(err, user.ErrEmptySubject))
	})
}

func (s *AccountUseCaseTestSuite) TestSyncUser() {
	s.Run("正常系: client role is pushed to the directory", func() {
		p, err := s.uc.Resolve(s.ctx, usecase.Identity{Subject: "user_sync", Email: "sync@example.com"})
		s.Require().NoError(err)
		s.directory.EXPECT().EnsureClientRole(gomock.Any(), "user_sync").Return(nil)

		res, err := s.uc.SyncUser(s.ctx, p)

		s.Require().NoError(err)
		s.Equal(p.UserID, res.UserID)
		s.Require().NotNil(res.Email)
		s.Equal("sync@example.com", *res.Email)
	})

	s.Run("境界値: directory failure does not fail the sync", func() {
		p, err := s.uc.Resolve(s.ctx, usecase.Identity{Subject: "user_sync2"})
		s.Require().NoError(err)
		s.directory.EXPECT().EnsureClientRole(gomock.Any(), gomock.Any()).Return(errs.ErrUpstream)

		_, err = s.uc.SyncUser(s.ctx, p)

		s.NoError(err)
	})

	s.Run("正常系: admins are left alone", func() {
		p, err := s.uc.Resolve(s.ctx, usecase.Identity{Subject: "user_admin", Role: user.RoleAdmin})
		s.Require().NoError(err)

		res, err := s.uc.SyncUser(s.ctx, p)

		s.Require().NoError(err)
		s.Equal(user.RoleAdmin, res.Role)
	})
}

func (s *AccountUseCaseTestSuite) TestRegisterDevice() {
	s.Run("正常系: token moves to its new owner", func() {
		first := s.f.user(s.T(), "first")
		second := s.f.user(s.T(), "second")

		_, err := s.uc.RegisterDevice(s.ctx, first, "voip-abc")
		s.Require().NoError(err)
		_, err = s.uc.RegisterDevice(s.ctx, second, "voip-abc")
		s.Require().NoError(err)

		devices := s.f.store.Devices()
		s.Require().Len(devices, 1)
		s.Equal(second, devices[0].UserID)
	})

	s.Run("正常系: registering twice keeps one row", func() {
		owner := s.f.user(s.T(), "owner")

		_, err := s.uc.RegisterDevice(s.ctx, owner, "voip-1")
		s.Require().NoError(err)
		_, err = s.uc.RegisterDevice(s.ctx, owner, " voip-1 ")
		s.Require().NoError(err)

		s.Len(s.f.store.Devices(), 1)
	})

	s.Run("異常系: empty token", func() {
		owner := s.f.user(s.T(), "owner")

		_, err := s.uc.RegisterDevice(s.ctx, owner, "  ")

		s.True(errs.Is(err, errs.ErrValidation))
	})
}
