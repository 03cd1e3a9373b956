package sessions

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "sellaap-session"

	userIDSessionKey = "userID"
	regionSessionKey = "region"
)

type SessionStore interface {
	GetUserID(r *http.Request) string
	SetUserID(w http.ResponseWriter, r *http.Request, userID string) error
	ClearUserID(w http.ResponseWriter, r *http.Request) error

	GetRegion(r *http.Request) string
	SetRegion(w http.ResponseWriter, r *http.Request, region string) error

	GetCart(r *http.Request) map[string]int
	SetCart(w http.ResponseWriter, r *http.Request, cart map[string]int) error
	ClearCart(w http.ResponseWriter, r *http.Request) error

	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

func (c *CookieSessionStore) getSession(r *http.Request) (*sessions.Session, error) {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		log.Printf("Error getting session: %v", err)
	}
	return session, nil
}

func (c *CookieSessionStore) GetUserID(r *http.Request) string {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return ""
	}
	userID, ok := session.Values[userIDSessionKey].(string)
	if !ok {
		return ""
	}
	return userID
}

func (c *CookieSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return err
	}
	session.Values[userIDSessionKey] = userID
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearUserID(w http.ResponseWriter, r *http.Request) error {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return err
	}
	delete(session.Values, userIDSessionKey)
	return session.Save(r, w)
}

func (c *CookieSessionStore) GetRegion(r *http.Request) string {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return ""
	}
	region, ok := session.Values[regionSessionKey].(string)
	if !ok {
		return ""
	}
	return region
}

func (c *CookieSessionStore) SetRegion(w http.ResponseWriter, r *http.Request, region string) error {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return err
	}
	session.Values[regionSessionKey] = region
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return err
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
