package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "minute-market/internal/handler/dto/request"
	resdto "minute-market/internal/handler/dto/response"
	"minute-market/internal/handler/httperr"
	"minute-market/internal/handler/middleware"
	"minute-market/internal/usecase/commands"
	"minute-market/internal/usecase/queries"
)

type AccountHandler struct {
	cmds commands.AccountCommands
	q    queries.AccountQueries
}

func NewAccountHandler(cmds commands.AccountCommands, q queries.AccountQueries) *AccountHandler {
	return &AccountHandler{cmds: cmds, q: q}
}

// @Summary Sync user
// @Description Ensures the local user exists and the directory user carries a role
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SyncUserResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /account/sync [post]
func (h *AccountHandler) Sync(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.FromError(c, errUnauthenticated)
		return
	}
	if c.Request.ContentLength != 0 {
		var req reqdto.SyncUserRequest
		if err := bindJSON(c, &req); err != nil {
			httperr.FromError(c, err)
			return
		}
		if err := middleware.CheckClaimedUser(c, req.UserID); err != nil {
			httperr.FromError(c, err)
			return
		}
	}
	result, err := h.cmds.SyncUser(c.Request.Context(), p)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	res, err := resdto.FromSyncUserResult(result)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Register device
// @Description Binds a VoIP push token to the caller, removing it from any other user
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RegisterDeviceRequest true "Device"
// @Success 200 {object} resdto.DeviceResponse
// @Failure 400 {object} httperr.Response
// @Router /account/devices [post]
func (h *AccountHandler) RegisterDevice(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.FromError(c, errUnauthenticated)
		return
	}
	var req reqdto.RegisterDeviceRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.FromError(c, err)
		return
	}
	if err := middleware.CheckClaimedUser(c, req.UserID); err != nil {
		httperr.FromError(c, err)
		return
	}
	d, err := h.cmds.RegisterDevice(c.Request.Context(), p.UserID, req.VoipToken)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDevice(d))
}

// @Summary Balance
// @Description Tokens held by the caller and their spendable minutes
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.BalanceResponse
// @Router /account/balance [get]
func (h *AccountHandler) Balance(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.FromError(c, errUnauthenticated)
		return
	}
	view, err := h.q.GetBalance(c.Request.Context(), p.UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	res, err := resdto.FromBalanceView(view)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Ledger
// @Description The caller's ledger entries, newest first
// @Tags account
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.LedgerPageResponse
// @Router /account/ledger [get]
func (h *AccountHandler) Ledger(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.FromError(c, errUnauthenticated)
		return
	}
	cursor, limit, err := page(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	items, next, err := h.q.GetLedger(c.Request.Context(), p.UserID, cursor, limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	res, err := resdto.FromLedgerViews(items, next)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
