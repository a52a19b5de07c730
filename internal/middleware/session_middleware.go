package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	sessionCookieName = "store_session"
	tokenSessionKey   = "basket_token"
	anonTokenCtxKey   = "anon_token"
)

// AnonymousToken ensures every request carries a session token identifying
// the anonymous visitor. The token lives in a gorilla session cookie and is
// what keys the visitor's ephemeral basket.
func AnonymousToken(store sessions.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, _ := store.Get(c.Request(), sessionCookieName)
			token, ok := sess.Values[tokenSessionKey].(string)
			if !ok || token == "" {
				token = uuid.NewString()
				sess.Values[tokenSessionKey] = token
				if err := sess.Save(c.Request(), c.Response()); err != nil {
					c.Logger().Warnf("save session: %v", err)
				}
			}
			c.Set(anonTokenCtxKey, token)
			return next(c)
		}
	}
}

// AnonToken returns the request's anonymous session token, or "" when the
// AnonymousToken middleware did not run.
func AnonToken(c echo.Context) string {
	if v, ok := c.Get(anonTokenCtxKey).(string); ok {
		return v
	}
	return ""
}

// NewCookieStore builds the session cookie store for the anonymous token.
func NewCookieStore(key []byte) *sessions.CookieStore {
	s := sessions.NewCookieStore(key)
	s.Options.HttpOnly = true
	s.Options.SameSite = http.SameSiteLaxMode
	s.Options.Path = "/"
	return s
}
