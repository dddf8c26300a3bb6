//go:build unit

package api_test

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"minute-market/internal/domain/user"
	"minute-market/internal/handler"
	"minute-market/internal/handler/api"
	"minute-market/internal/handler/middleware"
	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase"
	commandsmock "minute-market/tests/mock/commands"
	queriesmock "minute-market/tests/mock/queries"
	usecasemock "minute-market/tests/mock/usecase"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// routerSuite mounts every handler behind the production router with
// mocked use cases and identity ports.
type routerSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	pingErr  error

	verifier *usecasemock.MockIdentityVerifier
	resolver *usecasemock.MockPrincipalResolver

	marketCmds   *commandsmock.MockMarketCommands
	checkoutCmds *commandsmock.MockCheckoutCommands
	accountCmds  *commandsmock.MockAccountCommands
	adminCmds    *commandsmock.MockAdminCommands
	reconciler   *commandsmock.MockPaymentReconciler

	marketQ  *queriesmock.MockMarketQueries
	accountQ *queriesmock.MockAccountQueries
	adminQ   *queriesmock.MockAdminQueries
}

func (s *routerSuite) SetupSubTest() {
	gin.SetMode(gin.TestMode)
	s.mockCtrl = gomock.NewController(s.T())
	s.pingErr = nil

	s.verifier = usecasemock.NewMockIdentityVerifier(s.mockCtrl)
	s.resolver = usecasemock.NewMockPrincipalResolver(s.mockCtrl)
	s.marketCmds = commandsmock.NewMockMarketCommands(s.mockCtrl)
	s.checkoutCmds = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.accountCmds = commandsmock.NewMockAccountCommands(s.mockCtrl)
	s.adminCmds = commandsmock.NewMockAdminCommands(s.mockCtrl)
	s.reconciler = commandsmock.NewMockPaymentReconciler(s.mockCtrl)
	s.marketQ = queriesmock.NewMockMarketQueries(s.mockCtrl)
	s.accountQ = queriesmock.NewMockAccountQueries(s.mockCtrl)
	s.adminQ = queriesmock.NewMockAdminQueries(s.mockCtrl)

	cfg := config.NewTestConfig()
	s.router = gin.New()
	handler.NewRouter(s.router, cfg, middleware.NewLogger(cfg.Log), handler.Handlers{
		Health:   api.NewHealthHandler(pingerFunc(func(context.Context) error { return s.pingErr })),
		Market:   api.NewMarketHandler(s.marketCmds, s.marketQ),
		Account:  api.NewAccountHandler(s.accountCmds, s.accountQ),
		Checkout: api.NewCheckoutHandler(s.checkoutCmds, s.accountQ),
		Admin:    api.NewAdminHandler(s.adminCmds, s.adminQ),
		Webhook:  api.NewWebhookHandler(s.reconciler),
	}, middleware.NewAuthMiddleware(s.verifier, s.resolver), nil)
}

// login makes token authenticate as p for the rest of the subtest.
func (s *routerSuite) login(token string, p usecase.Principal) {
	id := usecase.Identity{Subject: p.Subject, Role: p.Role}
	s.verifier.EXPECT().Verify(gomock.Any(), "Bearer "+token).Return(id, nil).AnyTimes()
	s.resolver.EXPECT().Resolve(gomock.Any(), id).Return(p, nil).AnyTimes()
}

func (s *routerSuite) client(subject string) (string, usecase.Principal) {
	p := usecase.Principal{UserID: uuid.New(), Subject: subject, Role: user.RoleClient}
	token := "tok-" + subject
	s.login(token, p)
	return token, p
}

func (s *routerSuite) admin() (string, usecase.Principal) {
	p := usecase.Principal{UserID: uuid.New(), Subject: "user_admin", Role: user.RoleAdmin}
	s.login("tok-admin", p)
	return "tok-admin", p
}

// rejectToken fails verification; an empty token means no header at all.
func (s *routerSuite) rejectToken(token string) {
	bearer := ""
	if token != "" {
		bearer = "Bearer " + token
	}
	s.verifier.EXPECT().
		Verify(gomock.Any(), bearer).
		Return(usecase.Identity{}, errs.Mark(errs.New("token expired"), errs.ErrUnauthenticated))
}
