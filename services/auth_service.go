package services

import "log"

// AuthService exchanges admin credentials for a backend session.
type AuthService struct {
	client  *BackendClient
	session *SessionService
	cache   *DataCacheService
}

func NewAuthService(client *BackendClient, session *SessionService, cache *DataCacheService) *AuthService {
	return &AuthService{client: client, session: session, cache: cache}
}

// Login posts the credentials to the backend. On success the returned bearer
// token is stored, the authenticated flag set and the view switched to
// admin; on failure the session is left untouched. The data cache is
// re-fetched after the token changes so gated reads pick up the new session.
func (a *AuthService) Login(username, password string) error {
	token, err := a.client.Login(username, password)
	if err != nil {
		return err
	}
	if err := a.session.SetAdminSession(token); err != nil {
		return err
	}
	if err := a.cache.Refresh(); err != nil {
		log.Printf("Failed to refresh data after login: %v", err)
	}
	return nil
}

// Logout clears token and authenticated flag, resets the view to welcome and
// wipes the durable session entries. The cache is refreshed under the
// cleared token; in gated mode that empties the lists.
func (a *AuthService) Logout() error {
	if err := a.session.Reset(); err != nil {
		return err
	}
	if err := a.cache.Refresh(); err != nil {
		log.Printf("Failed to refresh data after logout: %v", err)
	}
	return nil
}
