package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rmitchellscott/orangesnap/internal/database"
	"github.com/rmitchellscott/orangesnap/internal/extraction"
	"github.com/rmitchellscott/orangesnap/internal/middleware"
	"github.com/rmitchellscott/orangesnap/internal/presets"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var eight = []string{"#aaa111", "#bbb222", "#ccc333", "#ddd444", "#eee555", "#fff666", "#111777", "#222888"}

type fakeExtractor struct {
	check error
	err   error
}

func (f fakeExtractor) Name() string { return "fake" }
func (f fakeExtractor) Check() error { return f.check }
func (f fakeExtractor) Extract(ctx context.Context, img extraction.Image, t extraction.Type) (extraction.Palette, error) {
	if f.err != nil {
		return extraction.Palette{}, f.err
	}
	if t == extraction.TypeGradient {
		return extraction.Palette{Type: t, Gradients: []extraction.GradientPair{{Start: "#000000", End: "#ffffff"}}, Source: "fake"}, nil
	}
	return extraction.Palette{Type: t, Colors: eight, Source: "fake"}, nil
}

func newRouter(ex extraction.Extractor, custom *presets.CustomPalette, palettes *database.PaletteService, limiter *middleware.IPRateLimiter) *gin.Engine {
	var recorder extraction.Recorder
	if palettes != nil {
		recorder = palettes
	}
	r := gin.New()
	RegisterRoutes(r, Deps{
		Extraction:     extraction.NewService(ex, custom, recorder),
		Custom:         custom,
		Palettes:       palettes,
		Limiter:        limiter,
		MaxUploadBytes: 1 << 20,
	})
	return r
}

func uploadRequest(t *testing.T, field string, data []byte, kind string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="shot.jpg"`)
		h.Set("Content-Type", "image/jpeg")
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		part.Write(data)
	} else {
		mw.WriteField("note", "no image here")
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/extract-colors", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if kind != "" {
		req.Header.Set(ExtractionTypeHeader, kind)
	}
	return req
}

func serve(r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]any
	json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestExtractColors(t *testing.T) {
	jpeg := []byte("\xff\xd8\xff\xe0fake")

	tests := []struct {
		name      string
		extractor fakeExtractor
		field     string
		kind      string
		wantCode  int
		wantError string
		wantType  string
	}{
		{
			name:      "missing credential before upload",
			extractor: fakeExtractor{check: extraction.ErrMissingCredential},
			field:     "",
			wantCode:  http.StatusInternalServerError,
			wantError: "OpenAI API key is not configured on the server",
		},
		{
			name:      "missing image",
			field:     "",
			wantCode:  http.StatusBadRequest,
			wantError: "Image file is required",
		},
		{
			name:     "solid default",
			field:    "image",
			wantCode: http.StatusOK,
			wantType: "solid",
		},
		{
			name:     "gradient",
			field:    "image",
			kind:     "gradient",
			wantCode: http.StatusOK,
			wantType: "gradient",
		},
		{
			name:     "unsupported type",
			field:    "image",
			kind:     "plaid",
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "unparseable model answer",
			extractor: fakeExtractor{err: &extraction.ParseError{Raw: "sorry"}},
			field:     "image",
			wantCode:  http.StatusInternalServerError,
			wantError: "Failed to extract color data from AI response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(tt.extractor, presets.NewCustomPalette(0), nil, nil)
			w, body := serve(r, uploadRequest(t, tt.field, jpeg, tt.kind))

			if w.Code != tt.wantCode {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
			if tt.wantError != "" && body["error"] != tt.wantError {
				t.Errorf("Expected error %q, got %v", tt.wantError, body["error"])
			}
			if tt.wantType != "" && body["type"] != tt.wantType {
				t.Errorf("Expected type %q, got %v", tt.wantType, body["type"])
			}
		})
	}
}

func TestExtractColorsVerbatimAndRaw(t *testing.T) {
	r := newRouter(fakeExtractor{}, presets.NewCustomPalette(0), nil, nil)
	_, body := serve(r, uploadRequest(t, "image", []byte("data"), "solid"))
	colors, _ := body["colors"].([]any)
	if len(colors) != 8 || colors[0] != "#aaa111" || colors[7] != "#222888" {
		t.Errorf("Expected the 8 colors verbatim, got %v", body["colors"])
	}

	r = newRouter(fakeExtractor{err: &extraction.ParseError{Raw: "no json here"}}, nil, nil, nil)
	_, body = serve(r, uploadRequest(t, "image", []byte("data"), ""))
	if body["raw"] != "no json here" {
		t.Errorf("Expected raw answer in error response, got %v", body)
	}
}

func TestExtractColorsLimits(t *testing.T) {
	r := newRouter(fakeExtractor{}, nil, nil, middleware.NewIPRateLimiter(1, 1))
	if w, _ := serve(r, uploadRequest(t, "image", []byte("data"), "")); w.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", w.Code)
	}
	if w, _ := serve(r, uploadRequest(t, "image", []byte("data"), "")); w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", w.Code)
	}

	r = newRouter(fakeExtractor{}, nil, nil, nil)
	big := bytes.Repeat([]byte("x"), 2<<20)
	if w, _ := serve(r, uploadRequest(t, "image", big, "")); w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413, got %d", w.Code)
	}
}

func TestGetPresetsIncludesCustomColors(t *testing.T) {
	custom := presets.NewCustomPalette(0)
	r := newRouter(fakeExtractor{}, custom, nil, nil)

	serve(r, uploadRequest(t, "image", []byte("data"), "solid"))

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/api/presets", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if patterns, _ := body["patterns"].([]any); len(patterns) != 4 {
		t.Errorf("Expected 4 pattern presets, got %v", body["patterns"])
	}
	customBody, _ := body["custom"].(map[string]any)
	if colors, _ := customBody["colors"].([]any); len(colors) != 8 {
		t.Errorf("Expected extracted colors among custom presets, got %v", body["custom"])
	}
	defaults, _ := body["defaults"].(map[string]any)
	if defaults["backgroundColor"] != "#f0f0f0" || defaults["padding"] != float64(100) {
		t.Errorf("Unexpected defaults: %v", defaults)
	}
}

func TestPaletteEndpoints(t *testing.T) {
	disabled := newRouter(fakeExtractor{}, nil, nil, nil)
	if w, _ := serve(disabled, httptest.NewRequest(http.MethodGet, "/api/palettes", nil)); w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 without history, got %d", w.Code)
	}

	db, err := database.Open(&database.DatabaseConfig{Type: "sqlite", DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	palettes := database.NewPaletteService(db)
	r := newRouter(fakeExtractor{}, nil, palettes, nil)

	serve(r, uploadRequest(t, "image", []byte("data"), "gradient"))

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/api/palettes?limit=5", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	list, _ := body["palettes"].([]any)
	if len(list) != 1 {
		t.Fatalf("Expected one recorded palette, got %v", body)
	}
	first, _ := list[0].(map[string]any)
	id, _ := first["id"].(string)
	if first["type"] != "gradient" {
		t.Errorf("Expected gradient palette, got %v", first)
	}

	if w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/api/palettes/"+id, nil)); w.Code != http.StatusOK {
		t.Errorf("Expected 200 for existing palette, got %d", w.Code)
	}
	if w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/api/palettes/"+uuid.NewString(), nil)); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	if w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/api/palettes/not-a-uuid", nil)); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
	if w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/api/palettes?limit=abc", nil)); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad limit, got %d", w.Code)
	}
}

func TestInfoEndpoints(t *testing.T) {
	r := newRouter(fakeExtractor{}, nil, nil, nil)

	if w, body := serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil)); w.Code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("healthz: %d %v", w.Code, body)
	}
	if w, body := serve(r, httptest.NewRequest(http.MethodGet, "/api/version", nil)); w.Code != http.StatusOK || body["name"] != "orangesnap" {
		t.Errorf("version: %d %v", w.Code, body)
	}
	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	if w.Code != http.StatusOK || body["extractionMode"] != "fake" || body["historyEnabled"] != false || body["maxUploadSizeMB"] != float64(1) {
		t.Errorf("config: %d %v", w.Code, body)
	}
}
