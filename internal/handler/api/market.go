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

type MarketHandler struct {
	cmds commands.MarketCommands
	q    queries.MarketQueries
}

func NewMarketHandler(cmds commands.MarketCommands, q queries.MarketQueries) *MarketHandler {
	return &MarketHandler{cmds: cmds, q: q}
}

// @Summary Treasury supply
// @Description Current unit price and token counts for an issue year
// @Tags public
// @Produce json
// @Param year query int false "Issue year (defaults to the current year)"
// @Success 200 {object} resdto.SupplyResponse
// @Failure 400 {object} httperr.Response
// @Router /public/supply [get]
func (h *MarketHandler) Supply(c *gin.Context) {
	year, err := queryYear(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	view, err := h.q.GetSupply(c.Request.Context(), year)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	res, err := resdto.FromSupplyView(view)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Open listings
// @Description Open listings, newest first, with keyset pagination
// @Tags market
// @Produce json
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ListingPageResponse
// @Failure 400 {object} httperr.Response
// @Router /market/listings [get]
func (h *MarketHandler) ListListings(c *gin.Context) {
	cursor, limit, err := page(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	items, next, err := h.q.ListOpenListings(c.Request.Context(), cursor, limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	res, err := resdto.FromListingViews(items, next)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Buy from treasury
// @Description Claims tokens from the treasury at the current unit price
// @Tags market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PurchaseRequest true "Purchase request"
// @Success 201 {object} resdto.PurchaseResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /market/purchase [post]
func (h *MarketHandler) Purchase(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.FromError(c, errUnauthenticated)
		return
	}
	var req reqdto.PurchaseRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.FromError(c, err)
		return
	}
	if err := middleware.CheckClaimedUser(c, req.UserID); err != nil {
		httperr.FromError(c, err)
		return
	}
	result, err := h.cmds.Purchase(c.Request.Context(), p.UserID, req.Quantity, req.Year)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	res, err := resdto.FromPurchaseResult(result)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary List a token
// @Description Offers an active token for sale at a fixed price
// @Tags market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ListTokenRequest true "Listing request"
// @Success 201 {object} resdto.ListingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /market/listings [post]
func (h *MarketHandler) ListToken(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.FromError(c, errUnauthenticated)
		return
	}
	var req reqdto.ListTokenRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.FromError(c, err)
		return
	}
	if err := middleware.CheckClaimedUser(c, req.UserID); err != nil {
		httperr.FromError(c, err)
		return
	}
	l, err := h.cmds.ListToken(c.Request.Context(), p.UserID, req.TokenID, req.Price)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	res, err := resdto.FromListing(l)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Cancel a listing
// @Tags market
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /market/listings/{id}/cancel [post]
func (h *MarketHandler) CancelListing(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.FromError(c, errUnauthenticated)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if err := h.claimFromOptionalBody(c); err != nil {
		httperr.FromError(c, err)
		return
	}
	if err := h.cmds.CancelListing(c.Request.Context(), p.UserID, id); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Buy a listing
// @Description Buys an open listing directly, transferring the token
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 201 {object} resdto.BuyListingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /market/listings/{id}/buy [post]
func (h *MarketHandler) BuyListing(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.FromError(c, errUnauthenticated)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if err := h.claimFromOptionalBody(c); err != nil {
		httperr.FromError(c, err)
		return
	}
	result, err := h.cmds.BuyListing(c.Request.Context(), p.UserID, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	res, err := resdto.FromBuyListingResult(result)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// claimFromOptionalBody checks a user_id sent with a bodyless action.
func (h *MarketHandler) claimFromOptionalBody(c *gin.Context) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	var req reqdto.ListingActionRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	return middleware.CheckClaimedUser(c, req.UserID)
}
