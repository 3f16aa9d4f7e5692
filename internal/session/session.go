package session

import (
	"github.com/buildbidz/buildbidz-go/internal/errors"
)

const (
	accountToken = "auth_token"
	accountOrg   = "org_selection"
)

// QueueClearer is the part of the offline queue the session needs: sign-out
// must also discard any deferred work recorded for the previous identity.
type QueueClearer interface {
	Clear() error
}

// Session holds the authenticated state of the client. It is constructed
// explicitly at startup and passed to the API client and sync coordinator;
// there is no package-level instance.
type Session struct {
	creds *CredentialStore
	queue QueueClearer
}

// New creates a Session backed by the given credential store. queue may be
// nil when no offline queue is in use (web-style callers).
func New(creds *CredentialStore, queue QueueClearer) *Session {
	return &Session{
		creds: creds,
		queue: queue,
	}
}

// SignIn stores the bearer token issued by the auth provider.
func (s *Session) SignIn(token string) error {
	if token == "" {
		return errors.New(errors.ErrInvalid, "token must not be empty")
	}
	return s.creds.Store(accountToken, token)
}

// Token returns the stored bearer token, or "" when signed out. Requests are
// sent unauthenticated in that case; the backend decides what they may do.
func (s *Session) Token() string {
	token, err := s.creds.Get(accountToken)
	if err != nil {
		return ""
	}
	return token
}

// SignOut deletes the stored credentials and clears the offline queue, so no
// deferred action from the previous identity can replay later.
func (s *Session) SignOut() error {
	if err := s.creds.Delete(accountToken); err != nil {
		return err
	}
	if err := s.creds.Delete(accountOrg); err != nil {
		return err
	}
	if s.queue != nil {
		if err := s.queue.Clear(); err != nil {
			return err
		}
	}
	return nil
}

// SetOrg stores the last selected organization.
func (s *Session) SetOrg(org string) error {
	return s.creds.Store(accountOrg, org)
}

// Org returns the last selected organization, or "" when none was stored.
func (s *Session) Org() string {
	org, err := s.creds.Get(accountOrg)
	if err != nil {
		return ""
	}
	return org
}
