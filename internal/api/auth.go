package api

import "context"

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the session payload the backend returns on a successful
// login. Every field ends up in the local session store.
type LoginResponse struct {
	Token   string `json:"token"`
	ID      string `json:"id"`
	Role    string `json:"role"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Address  string `json:"address,omitempty"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, "POST", "/login", creds, &out, false); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, "POST", "/signup", req, nil, false)
}
