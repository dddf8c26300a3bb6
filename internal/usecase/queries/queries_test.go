//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"minute-market/internal/domain/user"
	"minute-market/internal/pkg/clock"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase"
	"minute-market/internal/usecase/queries"
	queriesmock "minute-market/tests/mock/queries"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type QueriesTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockCtrl *gomock.Controller
	store    *queriesmock.MockMarketReadStore
	market   queries.MarketQueries
	account  queries.AccountQueries
	admin    queries.AdminQueries
}

func (s *QueriesTestSuite) SetupSubTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.store = queriesmock.NewMockMarketReadStore(s.mockCtrl)
	s.market = queries.NewMarketQueries(s.store, clock.NewMockClock(baseTime))
	s.account = queries.NewAccountQueries(s.store)
	s.admin = queries.NewAdminQueries(s.store)
}

func TestQueriesSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func listingsAt(n int) []*queries.ListingView {
	out := make([]*queries.ListingView, n)
	for i := range out {
		out[i] = &queries.ListingView{ID: uuid.New(), CreatedAt: baseTime.Add(-time.Duration(i) * time.Minute)}
	}
	return out
}

func (s *QueriesTestSuite) TestListOpenListings() {
	s.Run("正常系: full page yields a cursor at the last row", func() {
		rows := listingsAt(3)
		s.store.EXPECT().OpenListings(gomock.Any(), nil, 3).Return(rows, nil)

		got, next, err := s.market.ListOpenListings(s.ctx, nil, 2)

		s.Require().NoError(err)
		s.Len(got, 2)
		s.Require().NotNil(next)
		ks, err := queries.DecodeAfterCursor(next.After)
		s.Require().NoError(err)
		s.Equal(rows[1].ID, ks.ID)
		s.True(rows[1].CreatedAt.Equal(ks.CreatedAt))
	})

	s.Run("正常系: cursor is passed on as a keyset", func() {
		rows := listingsAt(1)
		after := queries.Keyset{CreatedAt: baseTime, ID: uuid.New()}
		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(after.CreatedAt, after.ID)}
		s.store.EXPECT().
			OpenListings(gomock.Any(), gomock.Any(), queries.DefaultListLimit+1).
			DoAndReturn(func(_ context.Context, got *queries.Keyset, _ int) ([]*queries.ListingView, error) {
				s.Empty(cmp.Diff(after, *got))
				return rows, nil
			})

		got, next, err := s.market.ListOpenListings(s.ctx, cursor, 0)

		s.Require().NoError(err)
		s.Len(got, 1)
		s.Nil(next)
	})

	s.Run("異常系: malformed cursor", func() {
		_, _, err := s.market.ListOpenListings(s.ctx, &queries.Cursor{After: "%%%"}, 10)

		s.True(errs.Is(err, queries.ErrInvalidCursor))
		s.True(errs.Is(err, errs.ErrValidation))
	})
}

func (s *QueriesTestSuite) TestValidateLimit() {
	s.Run("境界値", func() {
		s.Equal(queries.DefaultListLimit, queries.ValidateLimit(0))
		s.Equal(queries.DefaultListLimit, queries.ValidateLimit(-5))
		s.Equal(1, queries.ValidateLimit(1))
		s.Equal(queries.MaxListLimit, queries.ValidateLimit(queries.MaxListLimit+1))
	})
}

func (s *QueriesTestSuite) TestGetSupply() {
	s.Run("正常系: year 0 is the current year", func() {
		s.store.EXPECT().Supply(gomock.Any(), 2025).Return(&queries.SupplyView{Year: 2025}, nil)

		got, err := s.market.GetSupply(s.ctx, 0)

		s.Require().NoError(err)
		s.Equal(2025, got.Year)
	})

	s.Run("異常系: out of range year", func() {
		_, err := s.market.GetSupply(s.ctx, 10000)

		s.True(errs.Is(err, errs.ErrValidation))
	})
}

func (s *QueriesTestSuite) TestGetBalance() {
	s.Run("正常系: listed tokens are shown but not counted", func() {
		userID := uuid.New()
		s.store.EXPECT().HeldTokens(gomock.Any(), userID).Return([]queries.TokenView{
			{ID: uuid.New(), Status: "active", RemainingMinutes: 60},
			{ID: uuid.New(), Status: "listed", RemainingMinutes: 60},
			{ID: uuid.New(), Status: "active", RemainingMinutes: 30},
		}, nil)

		got, err := s.account.GetBalance(s.ctx, userID)

		s.Require().NoError(err)
		s.Equal(90, got.TotalMinutes)
		s.Len(got.Tokens, 3)
	})

	s.Run("境界値: no tokens is an empty list", func() {
		s.store.EXPECT().HeldTokens(gomock.Any(), gomock.Any()).Return(nil, nil)

		got, err := s.account.GetBalance(s.ctx, uuid.New())

		s.Require().NoError(err)
		s.NotNil(got.Tokens)
		s.Zero(got.TotalMinutes)
	})
}

func (s *QueriesTestSuite) TestGetPayment() {
	buyer := usecase.Principal{UserID: uuid.New(), Role: user.RoleClient}
	other := usecase.Principal{UserID: uuid.New(), Role: user.RoleClient}
	admin := usecase.Principal{UserID: uuid.New(), Role: user.RoleAdmin}

	s.Run("正常系: buyer and admin see the payment", func() {
		id := uuid.New()
		view := &queries.PaymentView{ID: id, BuyerID: buyer.UserID}
		s.store.EXPECT().PaymentByID(gomock.Any(), id).Return(view, nil).Times(2)

		got, err := s.account.GetPayment(s.ctx, buyer, id)
		s.Require().NoError(err)
		s.Equal(id, got.ID)

		_, err = s.account.GetPayment(s.ctx, admin, id)
		s.NoError(err)
	})

	s.Run("異常系: other users are forbidden", func() {
		id := uuid.New()
		s.store.EXPECT().PaymentByID(gomock.Any(), id).Return(&queries.PaymentView{ID: id, BuyerID: buyer.UserID}, nil)

		_, err := s.account.GetPayment(s.ctx, other, id)

		s.True(errs.Is(err, queries.ErrPaymentAccess))
		s.Equal(errs.KindForbidden, errs.KindOf(err))
	})

	s.Run("異常系: unknown payment", func() {
		s.store.EXPECT().PaymentByID(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("no rows"), errs.ErrNotFound))

		_, err := s.account.GetPayment(s.ctx, buyer, uuid.New())

		s.True(errs.Is(err, queries.ErrPaymentNotFound))
	})
}

func (s *QueriesTestSuite) TestListClients() {
	s.Run("正常系: last page has no cursor", func() {
		rows := []*queries.ClientView{{ID: uuid.New(), Subject: "user_a", CreatedAt: baseTime}}
		s.store.EXPECT().Clients(gomock.Any(), nil, 11).Return(rows, nil)

		got, next, err := s.admin.ListClients(s.ctx, nil, 10)

		s.Require().NoError(err)
		s.Len(got, 1)
		s.Nil(next)
	})
}
