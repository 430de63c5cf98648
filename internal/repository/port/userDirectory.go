package repository

import "context"

// PublicProfile is the projection of a user exposed to counterparts in
// conversation and notification listings.
type PublicProfile struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profile_pic"`
}

// UserDirectory resolves identities supplied by the authentication
// collaborator into public profile fields. FindByID returns (nil, nil)
// for an unknown identity; callers decide whether that is an error.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*PublicProfile, error)
}
