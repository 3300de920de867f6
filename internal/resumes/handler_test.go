package resumes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cvtoaster-backend/internal/shared/auth"
	"cvtoaster-backend/internal/shared/server/middleware"
)

const testUserID = "user-1"

func setupResumeRouter(t *testing.T, extractor TextExtractor) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Extract: extractor}
	handler := NewHandler(svc)

	router := gin.New()
	router.Use(middleware.Auth())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return router, repo
}

func addAuthHeader(t *testing.T, req *http.Request) {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{Sub: testUserID, Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func uploadResume(t *testing.T, router *gin.Engine, candidateName, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("candidate_name", candidateName); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fileWriter, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addAuthHeader(t, req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestUploadThenGetRoundtrip(t *testing.T) {
	router, _ := setupResumeRouter(t, fakeExtractor("Alice\nExperience\nBuilt APIs"))

	resp := uploadResume(t, router, "Alice", "resume.pdf", []byte("%PDF-1.4"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ID            string `json:"id"`
		CandidateName string `json:"candidateName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an id")
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+created.ID, nil)
	addAuthHeader(t, reqGet)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}
	var fetched struct {
		ID            string `json:"id"`
		ExtractedText string `json:"extractedText"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if fetched.ID != created.ID {
		t.Errorf("fetched id = %q, want %q", fetched.ID, created.ID)
	}
	if !strings.Contains(fetched.ExtractedText, "Built APIs") {
		t.Errorf("extracted text missing content: %q", fetched.ExtractedText)
	}
}

func TestUploadRejectsTxtFile(t *testing.T) {
	router, _ := setupResumeRouter(t, fakeExtractor("text"))

	resp := uploadResume(t, router, "Alice", "resume.txt", []byte("plain text"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUploadRejectsMissingName(t *testing.T) {
	router, _ := setupResumeRouter(t, fakeExtractor("text"))

	resp := uploadResume(t, router, "", "resume.pdf", []byte("%PDF-1.4"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestListReturnsOnlyOwnResumes(t *testing.T) {
	router, repo := setupResumeRouter(t, fakeExtractor("text"))

	if resp := uploadResume(t, router, "Alice", "resume.pdf", []byte("a")); resp.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", resp.Code)
	}
	other := Resume{ID: "other-1", UserID: "user-2", Filename: "x.pdf", ExtractedText: "t", CandidateName: "Bob"}
	if err := repo.Create(context.Background(), other); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
	addAuthHeader(t, req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var out struct {
		Resumes []struct {
			ID string `json:"id"`
		} `json:"resumes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Resumes) != 1 {
		t.Fatalf("expected 1 resume, got %d", len(out.Resumes))
	}
	if out.Resumes[0].ID == "other-1" {
		t.Error("another user's resume leaked into the listing")
	}
}

func TestDeleteNonexistentReturns404(t *testing.T) {
	router, _ := setupResumeRouter(t, fakeExtractor("text"))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/resumes/missing", nil)
	addAuthHeader(t, req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestFileStreamsRawBytes(t *testing.T) {
	router, _ := setupResumeRouter(t, fakeExtractor("text"))

	resp := uploadResume(t, router, "Alice", "resume.pdf", []byte("%PDF-1.4 raw"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", resp.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+created.ID+"/file", nil)
	addAuthHeader(t, req)
	respFile := httptest.NewRecorder()
	router.ServeHTTP(respFile, req)

	if respFile.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respFile.Code)
	}
	if respFile.Header().Get("Content-Type") != "application/pdf" {
		t.Errorf("content type = %q", respFile.Header().Get("Content-Type"))
	}
	if respFile.Body.String() != "%PDF-1.4 raw" {
		t.Errorf("body = %q", respFile.Body.String())
	}
	if !strings.HasPrefix(respFile.Header().Get("Content-Disposition"), "inline") {
		t.Errorf("disposition = %q", respFile.Header().Get("Content-Disposition"))
	}

	reqDl := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+created.ID+"/file?download=1", nil)
	addAuthHeader(t, reqDl)
	respDl := httptest.NewRecorder()
	router.ServeHTTP(respDl, reqDl)
	if !strings.HasPrefix(respDl.Header().Get("Content-Disposition"), "attachment") {
		t.Errorf("disposition = %q", respDl.Header().Get("Content-Disposition"))
	}
}

func TestReplaceUpdatesResume(t *testing.T) {
	router, _ := setupResumeRouter(t, fakeExtractor("first"))

	resp := uploadResume(t, router, "Alice", "resume.pdf", []byte("v1"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", resp.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("candidate_name", "Alice B")
	fileWriter, _ := writer.CreateFormFile("file", "resume2.docx")
	fileWriter.Write([]byte("v2"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/resumes/"+created.ID, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addAuthHeader(t, req)
	respPut := httptest.NewRecorder()
	router.ServeHTTP(respPut, req)

	if respPut.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", respPut.Code, respPut.Body.String())
	}
	var updated struct {
		CandidateName string `json:"candidateName"`
		Filename      string `json:"filename"`
	}
	if err := json.NewDecoder(respPut.Body).Decode(&updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.CandidateName != "Alice B" || updated.Filename != "resume2.docx" {
		t.Errorf("updated = %+v", updated)
	}
}
