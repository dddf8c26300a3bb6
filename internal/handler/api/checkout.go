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

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
	q    queries.AccountQueries
}

func NewCheckoutHandler(cmds commands.CheckoutCommands, q queries.AccountQueries) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds, q: q}
}

// @Summary Checkout treasury tokens
// @Description Opens a hosted checkout session for a treasury purchase
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutTreasuryRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /checkout/treasury [post]
func (h *CheckoutHandler) Treasury(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.FromError(c, errUnauthenticated)
		return
	}
	var req reqdto.CheckoutTreasuryRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.FromError(c, err)
		return
	}
	if err := middleware.CheckClaimedUser(c, req.UserID); err != nil {
		httperr.FromError(c, err)
		return
	}
	result, err := h.cmds.CheckoutTreasury(c.Request.Context(), p.UserID, req.Quantity, req.Year)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}

// @Summary Checkout a listing
// @Description Opens a hosted checkout session for an open listing
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutListingRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /checkout/listing [post]
func (h *CheckoutHandler) Listing(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.FromError(c, errUnauthenticated)
		return
	}
	var req reqdto.CheckoutListingRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.FromError(c, err)
		return
	}
	if err := middleware.CheckClaimedUser(c, req.UserID); err != nil {
		httperr.FromError(c, err)
		return
	}
	result, err := h.cmds.CheckoutListing(c.Request.Context(), p.UserID, req.ListingID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}

// @Summary Payment status
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /checkout/payments/{id} [get]
func (h *CheckoutHandler) GetPayment(c *gin.Context) {
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
	view, err := h.q.GetPayment(c.Request.Context(), p, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	res, err := resdto.FromPaymentView(view)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
