package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dkosteva/go-airport-backend/internal/access"
)

func serveWithPolicy(t *testing.T, r access.Resource, a access.Action, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	eng := gin.New()
	eng.Use(RequestID(), Identity())
	eng.GET("/guarded", Require(r, a), func(c *gin.Context) {
		c.String(http.StatusOK, PrincipalFrom(c).UserID)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	eng.ServeHTTP(w, req)
	return w
}

func TestIdentity_ParsesHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	eng := gin.New()
	eng.Use(Identity())

	var got access.Principal
	eng.GET("/who", func(c *gin.Context) {
		got = PrincipalFrom(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set(HeaderUserID, "  u42 ")
	req.Header.Set(HeaderUserStaff, "true")
	eng.ServeHTTP(httptest.NewRecorder(), req)

	if got.UserID != "u42" || !got.Staff {
		t.Fatalf("unexpected principal: %+v", got)
	}
}

func TestIdentity_StaffFlagIgnoredWithoutUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	eng := gin.New()
	eng.Use(Identity())

	var got access.Principal
	eng.GET("/who", func(c *gin.Context) {
		got = PrincipalFrom(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set(HeaderUserStaff, "1") // no X-User-ID
	eng.ServeHTTP(httptest.NewRecorder(), req)

	if got.Staff || got.Authenticated() {
		t.Fatalf("anonymous request must not gain staff: %+v", got)
	}
}

func TestRequire_PublicResource_AllowsAnonymous(t *testing.T) {
	w := serveWithPolicy(t, access.ResourceFlight, access.ActionRead, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequire_AuthenticatedResource(t *testing.T) {
	// Anonymous -> 401.
	w := serveWithPolicy(t, access.ResourceOrder, access.ActionRead, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	// Any identified caller -> 200.
	w = serveWithPolicy(t, access.ResourceOrder, access.ActionRead, map[string]string{HeaderUserID: "u1"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequire_StaffResource(t *testing.T) {
	// Identified non-staff -> 403, not 401.
	w := serveWithPolicy(t, access.ResourceCrew, access.ActionRead, map[string]string{HeaderUserID: "u1"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	w = serveWithPolicy(t, access.ResourceCrew, access.ActionRead, map[string]string{
		HeaderUserID: "u1", HeaderUserStaff: "yes",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff, got %d", w.Code)
	}
}

func TestRequire_UnknownPairFailsClosed(t *testing.T) {
	w := serveWithPolicy(t, access.Resource("bogus"), access.ActionManage, map[string]string{HeaderUserID: "u1"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("unknown policy pair must demand staff, got %d", w.Code)
	}
}
