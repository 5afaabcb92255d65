package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/termii-gateway/pkg/response"
)

func newEchoContext(method, path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusOK)
	}
}

func TestAPIKeyAuth_MissingServerKeyReturns500(t *testing.T) {
	mw := APIKeyAuth("") // server misconfigured

	called := false
	c, rec := newEchoContext(http.MethodGet, "/api/v1/balance")
	c.Request().Header.Set(APIKeyHeader, "anything")

	if err := mw(okHandler(&called))(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if called {
		t.Fatalf("expected next handler not to be called")
	}

	var body response.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.Success || body.Error == "" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestAPIKeyAuth_RejectsMissingOrWrongKey(t *testing.T) {
	const serverKey = "secret"

	tests := []struct {
		name   string
		header string
		value  string
	}{
		{name: "no header"},
		{name: "wrong key", header: APIKeyHeader, value: "wrong-key"},
		{name: "wrong bearer", header: echo.HeaderAuthorization, value: "Bearer wrong-key"},
		{name: "basic auth", header: echo.HeaderAuthorization, value: "Basic c2VjcmV0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			c, rec := newEchoContext(http.MethodGet, "/api/v1/balance")
			if tt.header != "" {
				c.Request().Header.Set(tt.header, tt.value)
			}

			if err := APIKeyAuth(serverKey)(okHandler(&called))(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", rec.Code)
			}
			if called {
				t.Fatalf("expected next handler not to be called")
			}
		})
	}
}

func TestAPIKeyAuth_ValidKeyPassesThrough(t *testing.T) {
	const serverKey = "secret"

	for _, set := range []func(r *http.Request){
		func(r *http.Request) { r.Header.Set(APIKeyHeader, serverKey) },
		func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+serverKey) },
	} {
		called := false
		c, rec := newEchoContext(http.MethodGet, "/api/v1/balance")
		set(c.Request())

		if err := APIKeyAuth(serverKey)(okHandler(&called))(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if !called {
			t.Fatalf("expected next handler to be called")
		}
	}
}
