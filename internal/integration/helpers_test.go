package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}

		switch v := m[k].(type) {
		case map[string]any:
			cleanMap(v)
		case []any:
			for _, item := range v {
				if nested, ok := item.(map[string]any); ok {
					cleanMap(nested)
				}
			}
		}
	}
}

func resetState(t testing.TB, app *TestApp) {
	app.Backend.reset()
	require.NoError(t, app.Redis.FlushAll(context.Background()).Err())
}

// browser carries one user's session cookie across requests.
type browser struct {
	t       testing.TB
	app     *TestApp
	cookies map[string]*http.Cookie
}

func newBrowser(t testing.TB, app *TestApp) *browser {
	return &browser{t: t, app: app, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(method, url string, body any) *http.Response {
	b.t.Helper()

	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		require.NoError(b.t, err)
		reader = bytes.NewReader(js)
	}

	req, err := prepareRequest(method, url, reader, nil, b.sessionCookies())
	require.NoError(b.t, err)

	rec := httptest.NewRecorder()
	b.app.App.Routes().ServeHTTP(rec, req)

	res := rec.Result()
	b.t.Cleanup(func() { res.Body.Close() })

	for _, c := range res.Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}

	return res
}

func (b *browser) sessionCookies() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(b.cookies))
	for _, c := range b.cookies {
		out = append(out, c)
	}
	return out
}

func (b *browser) login() *browser {
	b.t.Helper()

	res := b.do(http.MethodPost, "/auth/login", map[string]string{
		"username": TestUsername,
		"password": TestUserPassword,
	})
	require.Equal(b.t, http.StatusOK, res.StatusCode)

	return b
}

func decode[T any](t testing.TB, res *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

func guestCookies(t testing.TB, app *TestApp) []*http.Cookie {
	b := newBrowser(t, app)
	b.do(http.MethodGet, "/healthcheck", nil)
	return b.sessionCookies()
}

func authenticatedUserCookies(t testing.TB, app *TestApp) []*http.Cookie {
	return newBrowser(t, app).login().sessionCookies()
}
