package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

func newTestRouter(t *testing.T, h *Handler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))
	return router
}

// rosterUpload 构造带标准花名册的 multipart 请求体
func rosterUpload(t *testing.T, extraFields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "6A")
	rows := [][]interface{}{
		{"Name", "Class", "Teacher"},
		{"ann lee", "6.1", "MS SMITH"},
		{"BO CHAN", "6.2", "Mr Jones"},
	}
	for i, row := range rows {
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue("6A", cell, val)
		}
	}
	for i := len(rows); i < 25; i++ {
		cell, _ := excelize.CoordinatesToCellName(4, i+1)
		f.SetCellValue("6A", cell, "-")
	}
	xlsx, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "roster.xlsx")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(xlsx.Bytes()); err != nil {
		t.Fatalf("write part: %v", err)
	}
	for k, v := range extraFields {
		_ = w.WriteField(k, v)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, w.FormDataContentType()
}

func TestListModes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, NewHandler(nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/modes", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp struct {
		Modes []modeInfo `json:"modes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Modes) != 4 || resp.Modes[0].ID != "universal" {
		t.Fatalf("unexpected modes: %+v", resp.Modes)
	}
}

func TestGetStatus(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, NewHandler(nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestClean_StreamsDoneWithDownload(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, NewHandler(nil))
	body, contentType := rosterUpload(t, map[string]string{"mode": "universal"})

	req := httptest.NewRequest(http.MethodPost, "/api/clean", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	out := rec.Body.String()
	if !strings.Contains(out, `"type":"start"`) || !strings.Contains(out, `"type":"done"`) {
		t.Fatalf("missing events: %s", out)
	}
	if !strings.Contains(out, "/api/download/") {
		t.Fatalf("missing download url: %s", out)
	}
}

func TestSplit_ReturnsGroupedWorkbook(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, NewHandler(nil))
	body, contentType := rosterUpload(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/split", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "roster_by_class.xlsx") {
		t.Fatalf("unexpected disposition: %q", rec.Header().Get("Content-Disposition"))
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("open result: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Class 6.1" || sheets[1] != "Class 6.2" {
		t.Fatalf("unexpected sheets: %v", sheets)
	}
}

func TestDownload_OneShot(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil)
	router := newTestRouter(t, h)

	path := filepath.Join(t.TempDir(), "result.xlsx")
	if err := os.WriteFile(path, []byte("payload"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	token := h.downloads.put(path, "result.xlsx", time.Minute)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/download/"+token, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	// 一次性：再次下载应失效
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/download/"+token, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}
