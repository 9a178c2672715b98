package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"tileworld.ai/sprite-gateway/app/domain/generation"
	"tileworld.ai/sprite-gateway/app/domain/genlog"
	"tileworld.ai/sprite-gateway/app/domain/sprite"
	"tileworld.ai/sprite-gateway/app/domain/texture"
	"tileworld.ai/sprite-gateway/app/infrastructure/snapshot"
	"tileworld.ai/sprite-gateway/config/environment_variables"
)

type fakeBackend struct {
	calls         int
	generateErr   error
	configuredErr error
}

func (f *fakeBackend) Name() string {
	return "fake"
}

func (f *fakeBackend) Configured() error {
	return f.configuredErr
}

func (f *fakeBackend) Generate(ctx context.Context, request generation.Request) error {
	f.calls++
	if f.generateErr != nil {
		return f.generateErr
	}
	return os.WriteFile(request.OutputPath, []byte("png"), 0o644)
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	previous := environment_variables.EnvironmentVariables
	environment_variables.EnvironmentVariables = environment_variables.EnvironmentVariablesType{
		GENERATED_DIR:       dir,
		CACHE_SNAPSHOT_PATH: filepath.Join(dir, "object_cache.json"),
		REFERENCE_DIR:       filepath.Join(dir, "reference"),
	}
	t.Cleanup(func() {
		environment_variables.EnvironmentVariables = previous
	})

	backend := &fakeBackend{}
	invoker := generation.NewInvokerService(backend, genlog.NewService(nil))
	cache := sprite.NewVariantCacheService(snapshot.NewFileStoreAt(environment_variables.EnvironmentVariables.CACHE_SNAPSHOT_PATH))
	spriteService := sprite.NewSpriteService(cache, invoker)
	textureService := texture.NewTextureService(invoker)

	router := gin.New()
	group := router.Group("/api")
	NewSpriteAPI(spriteService).RegisterRouter(group)
	NewTextureAPI(textureService).RegisterRouter(group)
	NewGenerationLogAPI(genlog.NewService(nil)).RegisterRouter(group)
	return router, backend
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", recorder.Body.String(), err)
	}
	return body
}

func TestPostCreateObjectScenario(t *testing.T) {
	router, backend := newTestRouter(t)
	request := CreateObjectRequest{
		Name:         "Donut",
		Prompt:       "a donut with pink frosting",
		PlayerFacing: "south",
	}

	// First call: cold generation, object faces north.
	recorder := postJSON(t, router, "/api/create-object", request)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	body := decodeBody(t, recorder)
	if body["orientation"] != "north" {
		t.Errorf("orientation = %v, want north", body["orientation"])
	}
	if _, present := body["cached"]; present {
		t.Error("cold generation must not report cached")
	}
	if _, present := body["reorientedFrom"]; present {
		t.Error("cold generation must not report reorientedFrom")
	}
	if body["objectKey"] != "a donut with pink frosting" {
		t.Errorf("objectKey = %v", body["objectKey"])
	}

	// Same request again: exact cache hit, no backend call.
	recorder = postJSON(t, router, "/api/create-object", request)
	body = decodeBody(t, recorder)
	if body["cached"] != true {
		t.Errorf("repeat request must report cached=true, body %v", body)
	}
	if backend.calls != 1 {
		t.Errorf("backend calls = %d, want 1", backend.calls)
	}

	// Opposite facing: reorientation from the cached north variant.
	request.PlayerFacing = "north"
	recorder = postJSON(t, router, "/api/create-object", request)
	body = decodeBody(t, recorder)
	if body["orientation"] != "south" {
		t.Errorf("orientation = %v, want south", body["orientation"])
	}
	if body["reorientedFrom"] != "north" {
		t.Errorf("reorientedFrom = %v, want north", body["reorientedFrom"])
	}
	if backend.calls != 2 {
		t.Errorf("backend calls = %d, want 2", backend.calls)
	}
}

func TestPostCreateObjectValidation(t *testing.T) {
	router, backend := newTestRouter(t)

	recorder := postJSON(t, router, "/api/create-object", CreateObjectRequest{Prompt: "a donut"})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("missing name status = %d, want 400", recorder.Code)
	}
	body := decodeBody(t, recorder)
	if body["error"] == "" {
		t.Error("error body must carry a message")
	}

	recorder = postJSON(t, router, "/api/create-object", CreateObjectRequest{Name: "Donut"})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("missing prompt status = %d, want 400", recorder.Code)
	}
	if backend.calls != 0 {
		t.Error("validation failures must not reach the backend")
	}
}

func TestPostCreateObjectGenerationFailure(t *testing.T) {
	router, backend := newTestRouter(t)
	backend.generateErr = errors.New("quota exceeded")

	recorder := postJSON(t, router, "/api/create-object", CreateObjectRequest{
		Name:         "Donut",
		Prompt:       "a donut",
		PlayerFacing: "south",
	})
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", recorder.Code)
	}
	body := decodeBody(t, recorder)
	if msg, _ := body["error"].(string); msg == "" {
		t.Error("backend diagnostic must be surfaced")
	}
}

func TestPostEditObject(t *testing.T) {
	router, _ := newTestRouter(t)

	created := postJSON(t, router, "/api/create-object", CreateObjectRequest{
		Name:         "Donut",
		Prompt:       "a donut",
		PlayerFacing: "south",
	})
	imageURL := decodeBody(t, created)["imageUrl"].(string)

	recorder := postJSON(t, router, "/api/edit-object", EditObjectRequest{
		Name:        "Donut",
		ImageURL:    imageURL,
		Interaction: "add sprinkles",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	body := decodeBody(t, recorder)
	if body["imageUrl"] == imageURL {
		t.Error("edit must return a new derived image")
	}
}

func TestPostEditObjectRejectsOutsidePaths(t *testing.T) {
	router, backend := newTestRouter(t)

	recorder := postJSON(t, router, "/api/edit-object", EditObjectRequest{
		Name:        "Donut",
		ImageURL:    "/etc/passwd",
		Interaction: "make it glow",
	})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
	if backend.calls != 0 {
		t.Error("unsafe path must be rejected before any generation call")
	}
}

func TestPostUncacheObjectOrientation(t *testing.T) {
	router, backend := newTestRouter(t)

	postJSON(t, router, "/api/create-object", CreateObjectRequest{
		Name:         "Donut",
		Prompt:       "a donut",
		PlayerFacing: "south",
	})

	recorder := postJSON(t, router, "/api/uncache-object-orientation", UncacheObjectOrientationRequest{
		ObjectKey:   "a donut",
		Orientation: "north",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	if decodeBody(t, recorder)["removed"] != true {
		t.Error("eviction of a cached pair must report removed=true")
	}

	// Evicting again is a no-op, and the next create is cold again.
	recorder = postJSON(t, router, "/api/uncache-object-orientation", UncacheObjectOrientationRequest{
		ObjectKey:   "a donut",
		Orientation: "north",
	})
	if decodeBody(t, recorder)["removed"] != false {
		t.Error("evicting an absent pair must report removed=false")
	}

	created := postJSON(t, router, "/api/create-object", CreateObjectRequest{
		Name:         "Donut",
		Prompt:       "a donut",
		PlayerFacing: "south",
	})
	body := decodeBody(t, created)
	if _, present := body["cached"]; present {
		t.Error("request after eviction must not be a cache hit")
	}
	if backend.calls != 2 {
		t.Errorf("backend calls = %d, want 2", backend.calls)
	}
}

func TestPostGenerateWallTextureMissingReference(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := postJSON(t, router, "/api/generate-wall-texture", GenerateWallTextureRequest{Prompt: "mossy bricks"})
	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", recorder.Code)
	}
}

func TestPostGenerateWallTexture(t *testing.T) {
	router, _ := newTestRouter(t)

	refDir := environment_variables.EnvironmentVariables.REFERENCE_DIR
	if err := os.MkdirAll(refDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(refDir, texture.WallReferenceFileName), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	recorder := postJSON(t, router, "/api/generate-wall-texture", GenerateWallTextureRequest{Prompt: "mossy bricks"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	if decodeBody(t, recorder)["imageUrl"] == "" {
		t.Error("response must carry the generated imageUrl")
	}
}

func TestGetGenerationLogWithoutDatabase(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/generation-log", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
}
