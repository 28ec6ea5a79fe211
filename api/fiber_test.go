package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	certificate_controller "github.com/sunthewhat/certificate-automation/api/controllers/certificate"
	"github.com/sunthewhat/certificate-automation/internal/renderer"
	"github.com/sunthewhat/certificate-automation/internal/storage"
)

type stubRenderer struct{}

func (stubRenderer) Render(context.Context, renderer.Certificate) ([]byte, error) {
	return []byte("%PDF-1.3"), nil
}

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, _ []byte, name string, course string) (*storage.UploadResult, error) {
	return &storage.UploadResult{ID: "file-1", FileName: storage.FileName(name, course), ViewLink: "https://drive.google.com/file/d/file-1/view"}, nil
}

func newTestApp() *fiber.App {
	ctrl := certificate_controller.NewCertificateController(stubRenderer{}, stubUploader{}, nil, time.Second)
	return NewApp(ctrl, []string{"http://localhost:5173"}, false)
}

func TestNewApp_CreateRoute(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/certificates/create", strings.NewReader(`{"name":"Alice","course":"Biology","date":"03/01/2024"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var res map[string]any
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, true, res["success"])
}

func TestNewApp_NotFound(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/certificates/list", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var res map[string]any
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, false, res["success"])
	assert.Equal(t, "GET /certificates/list not found", res["message"])
}

func TestNewApp_Cors(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("OPTIONS", "/certificates/create", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}
