package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/adamavenir/peerlearn/internal/types"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token pair. The client's own token is not changed.
func (c *Client) Login(ctx context.Context, email, password string) (types.Token, error) {
	var token types.Token
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", nil, LoginRequest{Email: email, Password: password}, &token); err != nil {
		return types.Token{}, err
	}
	return token, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*types.User, error) {
	var user types.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the current token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

// Friends lists the user's friends.
func (c *Client) Friends(ctx context.Context) ([]types.User, error) {
	var friends []types.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/friends", nil, nil, &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

// FriendRequests lists requests received by the user.
func (c *Client) FriendRequests(ctx context.Context) ([]types.FriendRequest, error) {
	var requests []types.FriendRequest
	query := url.Values{}
	query.Set("status", string(types.FriendRequestPending))
	if err := c.doJSON(ctx, http.MethodGet, "/api/friends/requests", query, nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// RespondFriendRequest accepts or declines a request.
func (c *Client) RespondFriendRequest(ctx context.Context, id string, accept bool) error {
	action := "decline"
	if accept {
		action = "accept"
	}
	return c.doJSON(ctx, http.MethodPost, "/api/friends/requests/"+url.PathEscape(id)+"/"+action, nil, nil, nil)
}

// Classrooms lists classrooms the user belongs to.
func (c *Client) Classrooms(ctx context.Context) ([]types.Classroom, error) {
	var classrooms []types.Classroom
	if err := c.doJSON(ctx, http.MethodGet, "/api/classrooms", nil, nil, &classrooms); err != nil {
		return nil, err
	}
	return classrooms, nil
}

// Classroom fetches one classroom with its rooms.
func (c *Client) Classroom(ctx context.Context, id string) (*types.Classroom, error) {
	var classroom types.Classroom
	if err := c.doJSON(ctx, http.MethodGet, "/api/classrooms/"+url.PathEscape(id), nil, nil, &classroom); err != nil {
		return nil, err
	}
	return &classroom, nil
}

// YouTubeSessions lists the user's summarized videos, newest first.
func (c *Client) YouTubeSessions(ctx context.Context) ([]types.YouTubeSession, error) {
	var sessions []types.YouTubeSession
	if err := c.doJSON(ctx, http.MethodGet, "/api/youtube/sessions", nil, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
