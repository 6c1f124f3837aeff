package api

import "context"

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var token string
	err := c.do(ctx, "POST", "/api/auth/login", credentials{Email: email, Password: password}, &token)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Signup registers a new account. The user still logs in afterwards.
func (c *Client) Signup(ctx context.Context, email, password string) error {
	return c.do(ctx, "POST", "/api/auth/signup", credentials{Email: email, Password: password}, nil)
}
