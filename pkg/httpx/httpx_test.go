package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("first"), mark("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestSessionToken(t *testing.T) {
	opts := httpx.CookieOptions{}

	t.Run("cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: "from-cookie"})
		r.Header.Set("Authorization", "Bearer from-header")
		require.Equal(t, "from-cookie", httpx.SessionToken(r, opts))
	})

	t.Run("bearer", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer from-header")
		require.Equal(t, "from-header", httpx.SessionToken(r, opts))
	})

	t.Run("none", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		require.Empty(t, httpx.SessionToken(r, opts))
	})
}

func TestSetSessionCookie(t *testing.T) {
	opts := httpx.CookieOptions{Secure: true}

	t.Run("browser session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.SetSessionCookie(rec, opts, "tok", time.Now().Add(time.Hour), false)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, "session", cookies[0].Name)
		require.True(t, cookies[0].HttpOnly)
		require.True(t, cookies[0].Secure)
		require.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
		require.True(t, cookies[0].Expires.IsZero())
	})

	t.Run("persistent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.SetSessionCookie(rec, opts, "tok", time.Now().Add(24*time.Hour), true)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.False(t, cookies[0].Expires.IsZero())
		require.Positive(t, cookies[0].MaxAge)
	})

	t.Run("clear", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.ClearSessionCookie(rec, opts)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Empty(t, cookies[0].Value)
		require.Negative(t, cookies[0].MaxAge)
	})
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Email string `json:"email"`
	}

	t.Run("ok", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c"}`))
		r.Header.Set("Content-Type", "application/json")
		var b body
		require.NoError(t, httpx.DecodeJSON(httptest.NewRecorder(), r, &b))
		require.Equal(t, "a@b.c", b.Email)
	})

	for name, payload := range map[string]string{
		"unknown field": `{"nope":1}`,
		"trailing data": `{"email":"x"}{}`,
		"not json":      `email=x`,
	} {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
			var b body
			require.ErrorIs(t, httpx.DecodeJSON(httptest.NewRecorder(), r, &b), httpx.ErrBadJSON)
		})
	}
}

func TestLocalRedirect(t *testing.T) {
	tests := map[string]string{
		"":                    "/",
		"/v1/me":              "/v1/me",
		"https://evil.test/x": "/",
		"//evil.test":         "/",
		`/\evil.test`:         "/",
		"relative":            "/",
	}
	for in, want := range tests {
		require.Equal(t, want, httpx.LocalRedirect(in, "/"), in)
	}
}
