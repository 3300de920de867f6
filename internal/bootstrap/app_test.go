package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"

	"cvtoaster-backend/internal/shared/config"
)

type captureSender struct {
	bodies []string
}

func (c *captureSender) Send(to, subject, body string) error {
	c.bodies = append(c.bodies, body)
	return nil
}

type staticGenerator struct {
	out string
}

func (g staticGenerator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	return g.out, nil
}

type staticEmbedder struct{}

func (staticEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, float32(i)}
	}
	return out, nil
}

func (staticEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

var codePattern = regexp.MustCompile(`[0-9]{6}`)

func buildTestApp(t *testing.T) (*App, *captureSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := Build(config.Config{Env: "dev", CORSAllowOrigin: []string{"http://localhost:5173"}})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}

	sender := &captureSender{}
	app.UsersService.Mailer = sender
	app.ResumesService.Extract = func(ctx context.Context, data []byte, ext string) (string, error) {
		return "Alice\nExperience\nBuilt APIs that handle production traffic", nil
	}
	app.InsightsService.Generator = staticGenerator{out: "Alice, this resume needs work."}
	app.InsightsService.Embedder = staticEmbedder{}
	return app, sender
}

func postJSON(t *testing.T, router *gin.Engine, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	app, _ := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestSignupUploadAndRoastFlow(t *testing.T) {
	app, sender := buildTestApp(t)
	router := app.Router

	// Signup requests a code by mail; no account exists yet.
	resp := postJSON(t, router, "/api/v1/auth/signup", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cretpass",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("signup: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if len(sender.bodies) == 0 {
		t.Fatal("no verification mail sent")
	}
	code := codePattern.FindString(sender.bodies[len(sender.bodies)-1])
	if code == "" {
		t.Fatalf("no code in mail body: %q", sender.bodies[len(sender.bodies)-1])
	}

	// Verify creates the account and issues a token.
	resp = postJSON(t, router, "/api/v1/auth/verify", "", map[string]string{
		"email": "alice@example.com",
		"code":  code,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var session struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode verify response: %v", err)
	}
	if session.Token == "" {
		t.Fatal("no token issued")
	}

	// Profile is reachable with the token.
	reqMe := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	reqMe.Header.Set("Authorization", "Bearer "+session.Token)
	respMe := httptest.NewRecorder()
	router.ServeHTTP(respMe, reqMe)
	if respMe.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", respMe.Code, respMe.Body.String())
	}

	// Upload a resume.
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("candidate_name", "Alice")
	fileWriter, err := writer.CreateFormFile("file", "resume.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fileWriter.Write([]byte("%PDF-1.4 test"))
	writer.Close()

	reqUpload := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	reqUpload.Header.Set("Content-Type", writer.FormDataContentType())
	reqUpload.Header.Set("Authorization", "Bearer "+session.Token)
	respUpload := httptest.NewRecorder()
	router.ServeHTTP(respUpload, reqUpload)
	if respUpload.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d: %s", respUpload.Code, respUpload.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(respUpload.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}

	// Regenerate a roast, save it, read it back.
	resp = postJSON(t, router, "/api/v1/roast/"+created.ID, session.Token, map[string]string{"action": "regenerate"})
	if resp.Code != http.StatusOK {
		t.Fatalf("roast: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var roast struct {
		RoastResponse string `json:"roast_response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&roast); err != nil {
		t.Fatalf("decode roast response: %v", err)
	}
	if roast.RoastResponse == "" {
		t.Fatal("empty roast response")
	}

	resp = postJSON(t, router, "/api/v1/roast/"+created.ID, session.Token, map[string]string{
		"action":         "save",
		"roast_response": roast.RoastResponse,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("save roast: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/roast/"+created.ID, nil)
	reqGet.Header.Set("Authorization", "Bearer "+session.Token)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusOK {
		t.Fatalf("get roast: expected 200, got %d: %s", respGet.Code, respGet.Body.String())
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app, _ := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}
