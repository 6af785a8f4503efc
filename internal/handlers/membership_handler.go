package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/ironpeak-gym/internal/domain/membership"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/logger"
	ucMembership "github.com/BruksfildServices01/ironpeak-gym/internal/usecase/membership"
)

type MembershipHandler struct {
	verify   *ucMembership.VerifyMembership
	checkout *ucMembership.StartCheckout
	confirm  *ucMembership.ConfirmPayment
}

// NewMembershipHandler accepts nil checkout and confirm when payments are not configured.
func NewMembershipHandler(
	verify *ucMembership.VerifyMembership,
	checkout *ucMembership.StartCheckout,
	confirm *ucMembership.ConfirmPayment,
) *MembershipHandler {
	return &MembershipHandler{
		verify:   verify,
		checkout: checkout,
		confirm:  confirm,
	}
}

type VerifyMembershipRequest struct {
	Email string `json:"email"`
}

// VerifyMembershipResponse is returned for every outcome. Validity failures
// carry error and reason with status 200; bad input and store failures carry
// error_code instead.
type VerifyMembershipResponse struct {
	Valid  bool            `json:"valid"`
	Member *domain.Summary `json:"member,omitempty"`
	Error  string          `json:"error,omitempty"`
	Reason string          `json:"reason,omitempty"`
	Code   string          `json:"error_code,omitempty"`
}

type CheckoutRequest struct {
	Name  string `json:"name" binding:"max=100"`
	Email string `json:"email" binding:"required,gym_email"`
	Plan  string `json:"plan" binding:"required"`
}

// ======================================================
// VERIFY
// ======================================================

func (h *MembershipHandler) Verify(c *gin.Context) {
	var req VerifyMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, VerifyMembershipResponse{
			Error: "Email is required",
			Code:  "email_required",
		})
		return
	}

	res, err := h.verify.Execute(c.Request.Context(), req.Email)
	if err != nil {
		code := httperr.CodeOf(err)
		status, message, ok := httperr.Lookup(code)
		if !ok {
			code, status, message = "verification_failed", http.StatusInternalServerError, "Verification failed. Please try again."
		}
		if status >= http.StatusInternalServerError {
			logger.Error("membership verification failed", "error", err)
		}
		c.JSON(status, VerifyMembershipResponse{Error: message, Code: code})
		return
	}

	if !res.Valid {
		c.JSON(http.StatusOK, VerifyMembershipResponse{
			Error:  res.Message,
			Reason: string(res.Reason),
		})
		return
	}

	c.JSON(http.StatusOK, VerifyMembershipResponse{
		Valid:  true,
		Member: res.Member,
	})
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *MembershipHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email and plan are required")
		return
	}

	out, err := h.checkout.Execute(c.Request.Context(), ucMembership.StartCheckoutInput{
		Name:  req.Name,
		Email: req.Email,
		Plan:  req.Plan,
	})
	if err != nil {
		respondError(c, err, "failed_to_start_checkout", "Failed to start checkout")
		return
	}

	c.JSON(http.StatusCreated, out)
}

// ======================================================
// WEBHOOK
// ======================================================

type paymentNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Webhook receives payment notifications. Anything that is not an approved
// plan payment is acknowledged and ignored.
func (h *MembershipHandler) Webhook(c *gin.Context) {
	var n paymentNotification
	_ = c.ShouldBindJSON(&n)

	kind := c.DefaultQuery("type", n.Type)
	paymentID := c.DefaultQuery("data.id", n.Data.ID)

	if kind != "payment" || paymentID == "" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	member, err := h.confirm.Execute(c.Request.Context(), paymentID)
	if err != nil {
		respondError(c, err, "failed_to_confirm_payment", "Failed to confirm payment")
		return
	}

	resp := gin.H{"received": true}
	if member != nil {
		resp["memberId"] = member.ID
	}
	c.JSON(http.StatusOK, resp)
}
