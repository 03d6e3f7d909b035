package dto

// CreateSessionRequest exchanges a LIFF access token for a session JWT.
type CreateSessionRequest struct {
	AccessToken string `json:"accessToken" binding:"required"`
}

// CreateSessionResponse carries the minted session token.
type CreateSessionResponse struct {
	Token string `json:"token"`
}

// LinkAccountRequest stores the freee link produced by the LIFF OAuth flow.
type LinkAccountRequest struct {
	AccessToken    string `json:"accessToken" binding:"required"`
	FreeeCompanyID int64  `json:"freeeCompanyId" binding:"required"`
	RefreshToken   string `json:"refreshToken" binding:"required"`
}
