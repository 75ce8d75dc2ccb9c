package models

import "time"

// Session is a logged in tenant. The upstream token never leaves the server.
type Session struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	CustomerID    string    `json:"customer_id"`
	UpstreamToken string    `json:"upstream_token"`
	User          string    `json:"user,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Challenge is the arithmetic question asked before a login
type Challenge struct {
	ID        string    `json:"id" example:"3f1c0b7e-8a1d-4c55-9a55-1f1c2b3d4e5f"`
	Question  string    `json:"question" example:"3 + 4 = ?"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginResult is returned after a successful login
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      any       `json:"user,omitempty"`
}
