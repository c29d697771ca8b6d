// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the acting principal from the identity headers and
// enforces the static access policy per route. The service sits behind a
// gateway that authenticates callers and forwards their identity via
// X-User-ID and X-User-Staff; requests with no X-User-ID are anonymous.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dkosteva/go-airport-backend/internal/access"
	"github.com/dkosteva/go-airport-backend/internal/sysutil"
)

const (
	// principalKey is the Gin context key under which the principal is stored.
	principalKey = "principal"

	// HeaderUserID carries the authenticated caller's id.
	HeaderUserID = "X-User-ID"
	// HeaderUserStaff marks the caller as staff when truthy.
	HeaderUserStaff = "X-User-Staff"
)

// Identity resolves the caller's principal from the identity headers and
// stores it in the Gin context. It never rejects a request by itself; the
// policy check happens in Require.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := access.Principal{
			UserID: strings.TrimSpace(c.GetHeader(HeaderUserID)),
		}
		if p.Authenticated() {
			p.Staff = sysutil.IsTruthy(c.GetHeader(HeaderUserStaff))
		}
		c.Set(principalKey, p)
		// Mirror the user id for the access log.
		if p.UserID != "" {
			c.Set("userID", p.UserID)
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal attached by Identity. Without it, an
// anonymous principal is returned.
func PrincipalFrom(c *gin.Context) access.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(access.Principal); ok {
			return p
		}
	}
	return access.Principal{}
}

// Require enforces the policy capability for (resource, action). Anonymous
// callers get 401, identified but under-privileged callers get 403. Place it
// per route group after Identity.
func Require(r access.Resource, a access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFrom(c)
		if access.Allowed(p, r, a) {
			c.Next()
			return
		}
		rid := c.Writer.Header().Get(requestIDHeader)
		if !p.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": rid,
				"code":       "unauthorized",
				"message":    "authentication required",
			})
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"request_id": rid,
			"code":       "forbidden",
			"message":    "insufficient privileges",
		})
	}
}
