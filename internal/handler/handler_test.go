package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"course-compass/internal/middleware"
	"course-compass/internal/validation"
)

const testUserID = "01HZXTESTUSER0000000000000"

var testValidator = validation.NewValidator()

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
}

// asUser stands in for middleware.Protected.
func asUser(c *fiber.Ctx) error {
	c.Locals(middleware.UserIDKey, testUserID)
	return c.Next()
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Code    string                 `json:"code"`
	Data    json.RawMessage        `json:"data"`
	Errors  []map[string]any       `json:"errors"`
	Details map[string]interface{} `json:"details"`
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var env envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func errorFields(env envelope) []string {
	fields := make([]string, 0, len(env.Errors))
	for _, e := range env.Errors {
		if f, ok := e["field"].(string); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

func newGetRequest(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}
