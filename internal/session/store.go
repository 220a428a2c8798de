// Package session holds the locally persisted login state: the bearer token
// and the profile fields the backend hands back at login. The store is a
// plain key-value surface; values are written wholesale at login and cleared
// in bulk at logout. Nothing here talks to the network.
package session

import (
	"context"
	"errors"
)

// Keys mirror the fields the backend returns from /login.
const (
	KeyToken   = "token"
	KeyUserID  = "id"
	KeyRole    = "role"
	KeyName    = "name"
	KeyAddress = "address"
	KeyEmail   = "email"
)

var ErrKeyNotFound = errors.New("session key not found")

// Store is the local session key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Clear removes every key. Logout is a Clear.
	Clear(ctx context.Context) error
}

// Session is the profile snapshot taken at login.
type Session struct {
	Token   string
	UserID  string
	Role    string
	Name    string
	Address string
	Email   string
}

func (s Session) pairs() map[string]string {
	return map[string]string{
		KeyToken:   s.Token,
		KeyUserID:  s.UserID,
		KeyRole:    s.Role,
		KeyName:    s.Name,
		KeyAddress: s.Address,
		KeyEmail:   s.Email,
	}
}

// TokenSource adapts a Store to the API client's token lookup. A store with
// no token yields an empty string, which the client treats as not
// authenticated without issuing a request.
type TokenSource struct {
	Store Store
}

func (t TokenSource) Token(ctx context.Context) (string, error) {
	v, err := t.Store.Get(ctx, KeyToken)
	if errors.Is(err, ErrKeyNotFound) {
		return "", nil
	}
	return v, err
}

// Save writes the whole session to the store.
func Save(ctx context.Context, st Store, sess Session) error {
	for key, value := range sess.pairs() {
		if err := st.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the session back. Missing keys come back as empty fields rather
// than errors, matching how the original screens read storage ad hoc.
func Load(ctx context.Context, st Store) (Session, error) {
	var sess Session
	for key, dst := range map[string]*string{
		KeyToken:   &sess.Token,
		KeyUserID:  &sess.UserID,
		KeyRole:    &sess.Role,
		KeyName:    &sess.Name,
		KeyAddress: &sess.Address,
		KeyEmail:   &sess.Email,
	} {
		v, err := st.Get(ctx, key)
		if err != nil {
			if errors.Is(err, ErrKeyNotFound) {
				continue
			}
			return Session{}, err
		}
		*dst = v
	}
	return sess, nil
}
