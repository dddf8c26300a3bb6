package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "minute-market/internal/handler/dto/request"
	resdto "minute-market/internal/handler/dto/response"
	"minute-market/internal/handler/httperr"
	"minute-market/internal/usecase/commands"
	"minute-market/internal/usecase/queries"
)

type AdminHandler struct {
	cmds commands.AdminCommands
	q    queries.AdminQueries
}

func NewAdminHandler(cmds commands.AdminCommands, q queries.AdminQueries) *AdminHandler {
	return &AdminHandler{cmds: cmds, q: q}
}

// @Summary Mint tokens
// @Description Adds treasury tokens for an issue year and sets the unit price
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.MintRequest true "Mint request"
// @Success 201 {object} resdto.MintResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/mint [post]
func (h *AdminHandler) Mint(c *gin.Context) {
	var req reqdto.MintRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.FromError(c, err)
		return
	}
	result, err := h.cmds.Mint(c.Request.Context(), req.Quantity, req.Price, req.Year)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	res, err := resdto.FromMintResult(result)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Set unit price
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SetPriceRequest true "Price request"
// @Success 200 {object} resdto.PriceResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/price [post]
func (h *AdminHandler) SetPrice(c *gin.Context) {
	var req reqdto.SetPriceRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.FromError(c, err)
		return
	}
	result, err := h.cmds.SetPrice(c.Request.Context(), req.Price, req.RepriceTreasury)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	res, err := resdto.FromPriceResult(result)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Create client
// @Description Creates a client at the identity provider and locally
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateClientRequest true "Client"
// @Success 201 {object} resdto.CreateClientResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /admin/clients [post]
func (h *AdminHandler) CreateClient(c *gin.Context) {
	var req reqdto.CreateClientRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.FromError(c, err)
		return
	}
	result, err := h.cmds.CreateClient(c.Request.Context(), req.ToCommand())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCreateClientResult(result))
}

// @Summary List clients
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ClientPageResponse
// @Router /admin/clients [get]
func (h *AdminHandler) ListClients(c *gin.Context) {
	cursor, limit, err := page(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	items, next, err := h.q.ListClients(c.Request.Context(), cursor, limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	res, err := resdto.FromClientViews(items, next)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
