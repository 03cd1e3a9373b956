package sessions

import (
	"encoding/gob"
	"net/http"
)

const cartSessionKey = "cart"

func init() {
	gob.Register(map[string]int{})
}

// GetCart returns the session cart as productID -> quantity. An absent
// or malformed value yields an empty cart.
func (c *CookieSessionStore) GetCart(r *http.Request) map[string]int {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return map[string]int{}
	}
	cart, ok := session.Values[cartSessionKey].(map[string]int)
	if !ok {
		return map[string]int{}
	}
	return cart
}

func (c *CookieSessionStore) SetCart(w http.ResponseWriter, r *http.Request, cart map[string]int) error {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return err
	}
	session.Values[cartSessionKey] = cart
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearCart(w http.ResponseWriter, r *http.Request) error {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return err
	}
	delete(session.Values, cartSessionKey)
	return session.Save(r, w)
}
