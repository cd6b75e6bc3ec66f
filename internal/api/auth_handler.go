package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/barber-booking-backend/internal/auth"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/response"
)

type AuthHandler struct {
	verifier    auth.Verifier
	codeTTL     time.Duration
	exposeCodes bool
}

func NewAuthHandler(verifier auth.Verifier, codeTTL time.Duration, exposeCodes bool) *AuthHandler {
	return &AuthHandler{
		verifier:    verifier,
		codeTTL:     codeTTL,
		exposeCodes: exposeCodes,
	}
}

//
// POST /v1/auth/code
//

func (h *AuthHandler) SendCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	code, number, err := h.verifier.SendCode(c.Request.Context(), req.CustomerNumber)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := SendCodeResponse{
		CustomerNumber: number,
		ExpiresIn:      int(h.codeTTL.Seconds()),
	}
	if h.exposeCodes {
		resp.DemoCode = code
	}

	c.JSON(http.StatusAccepted, resp)
}

//
// POST /v1/auth/verify
//

func (h *AuthHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	session, err := h.verifier.Verify(c.Request.Context(), req.CustomerNumber, req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, VerifyResponse{
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt,
		Customer: CustomerResponse{
			CustomerNumber: session.CustomerNumber,
			IsAdmin:        session.Admin,
		},
	})
}

//
// POST /v1/auth/logout
//

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.verifier.Logout(c.Request.Context(), auth.GetCustomerNumber(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

//
// GET /v1/auth/me
//

func (h *AuthHandler) Me(c *gin.Context) {
	number := auth.GetCustomerNumber(c)
	if number == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		Customer: CustomerResponse{
			CustomerNumber: number,
			IsAdmin:        auth.IsAdmin(c),
		},
	})
}
