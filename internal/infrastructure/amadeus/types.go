package amadeus

// TokenResponse is the OAuth2 client-credentials grant response.
type TokenResponse struct {
	Type        string `json:"type"`
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	State       string `json:"state"`
}
