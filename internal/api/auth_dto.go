package api

import "time"

// SendCodeRequest is the payload for POST /v1/auth/code.
type SendCodeRequest struct {
	CustomerNumber string `json:"customer_number" binding:"required,max=32"`
}

// SendCodeResponse is the response for POST /v1/auth/code.
// DemoCode is only filled outside production, where no SMS gateway is wired.
type SendCodeResponse struct {
	CustomerNumber string `json:"customer_number"`
	ExpiresIn      int    `json:"expires_in"`
	DemoCode       string `json:"demo_code,omitempty"`
}

// VerifyRequest is the payload for POST /v1/auth/verify.
type VerifyRequest struct {
	CustomerNumber string `json:"customer_number" binding:"required,max=32"`
	Code           string `json:"code" binding:"required,max=16"`
}

// CustomerResponse is the shape of the signed-in customer returned in API responses.
type CustomerResponse struct {
	CustomerNumber string `json:"customer_number"`
	IsAdmin        bool   `json:"is_admin"`
}

// VerifyResponse is the response for POST /v1/auth/verify.
type VerifyResponse struct {
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
	Customer    CustomerResponse `json:"customer"`
}

// MeResponse is the response for GET /v1/auth/me.
type MeResponse struct {
	Customer CustomerResponse `json:"customer"`
}
