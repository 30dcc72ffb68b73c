package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"studyplanner/internal/app/controllers"
	"studyplanner/internal/app/models"
	"studyplanner/internal/app/models/dto"
	"studyplanner/internal/app/routes"
	"studyplanner/internal/app/services"
	"studyplanner/internal/catalog"
	"studyplanner/internal/metrics"
	"studyplanner/internal/pkg/websocket"
	"studyplanner/internal/planner"
	"studyplanner/internal/storage"
)

func buildTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	maxECTS := 18.0
	cat := catalog.New([]models.CourseRecord{
		{ID: "course-ie-500", Code: "IE 500", Title: "Data Mining I", ECTS: 6,
			Professor: "Paulheim", AreaID: "data-analytics-methods", AreaName: "D. Data Analytics Methods"},
		{ID: "course-ac-651", Code: "AC 651", Title: "Additional Course", ECTS: 18,
			IsVariableCredit: true, MaxECTS: &maxECTS},
	}, catalog.DefaultRules(), catalog.DefaultAreaColors())

	store := planner.NewStore(cat, storage.NewMemoryAdapter())
	m := metrics.New()
	hub := websocket.NewHub(zerolog.Nop())

	catalogController := controllers.NewCatalogController(services.NewCatalogService(cat))
	plannerController := controllers.NewPlannerController(services.NewPlannerService(store, m, hub, zerolog.Nop()))
	exportController := controllers.NewExportController(services.NewExportService(cat, m))

	router := gin.New()
	routes.SetupRouter(router, catalogController, plannerController, exportController,
		websocket.NewHandler(hub, zerolog.Nop()), m)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error response is not valid JSON: %v\n%s", err, recorder.Body.String())
	}
	if resp.Error == nil {
		t.Fatalf("error response has no error detail: %s", recorder.Body.String())
	}
	return resp.Error.Code
}

func TestPlanEndpoint(t *testing.T) {
	router := buildTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/plan/selections",
		gin.H{"courseId": "course-ie-500"})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	// Planning the same course again conflicts.
	recorder = doJSON(t, router, http.MethodPost, "/api/v1/plan/selections",
		gin.H{"courseId": "course-ie-500"})
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", recorder.Code)
	}
	if code := errorCode(t, recorder); code != dto.ErrorCodeDuplicatePlan {
		t.Fatalf("expected %s, got %s", dto.ErrorCodeDuplicatePlan, code)
	}

	recorder = doJSON(t, router, http.MethodPost, "/api/v1/plan/selections",
		gin.H{"courseId": "gone"})
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}

	// A variable-credit course cannot be planned without an amount.
	recorder = doJSON(t, router, http.MethodPost, "/api/v1/plan/selections",
		gin.H{"courseId": "course-ac-651"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if code := errorCode(t, recorder); code != dto.ErrorCodeWrongCreditScheme {
		t.Fatalf("expected %s, got %s", dto.ErrorCodeWrongCreditScheme, code)
	}

	recorder = doJSON(t, router, http.MethodPost, "/api/v1/plan/selections", gin.H{})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("missing courseId must be 400, got %d", recorder.Code)
	}
}

func TestVariableCreditEndpoint(t *testing.T) {
	router := buildTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/plan/selections/variable",
		gin.H{"courseId": "course-ac-651", "ects": 10})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	// 9 more do not fit into the 18 ECTS cap.
	recorder = doJSON(t, router, http.MethodPost, "/api/v1/plan/selections/variable",
		gin.H{"courseId": "course-ac-651", "ects": 9})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if code := errorCode(t, recorder); code != dto.ErrorCodeCapacityExceeded {
		t.Fatalf("expected %s, got %s", dto.ErrorCodeCapacityExceeded, code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error response is not valid JSON: %v", err)
	}
	details, ok := resp.Error.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("expected details map, got %T", resp.Error.Details)
	}
	if remaining := details["remaining_ects"]; remaining != 8.0 {
		t.Fatalf("expected remaining_ects 8, got %v", remaining)
	}
}

func TestRemoveAllRequiresConfirmation(t *testing.T) {
	router := buildTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/plan/selections", gin.H{"courseId": "course-ie-500"})

	recorder := doJSON(t, router, http.MethodDelete, "/api/v1/plan", nil)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed clear must be 400, got %d", recorder.Code)
	}

	recorder = doJSON(t, router, http.MethodDelete, "/api/v1/plan?confirm=true", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("confirmed clear failed: %d %s", recorder.Code, recorder.Body.String())
	}

	recorder = doJSON(t, router, http.MethodGet, "/api/v1/plan", nil)
	var resp struct {
		Data dto.PlanResponse `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("plan response is not valid JSON: %v", err)
	}
	if len(resp.Data.Selections) != 0 {
		t.Fatalf("expected empty plan after clear, got %d selections", len(resp.Data.Selections))
	}
}

func TestGetPlanEndpoint(t *testing.T) {
	router := buildTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/plan/selections", gin.H{"courseId": "course-ie-500"})

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/plan?q=data+mining&sort=title", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var resp struct {
		Data dto.PlanResponse `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("plan response is not valid JSON: %v", err)
	}
	if len(resp.Data.Rows) != 1 {
		t.Fatalf("expected 1 filtered row, got %d", len(resp.Data.Rows))
	}
	if resp.Data.Rows[0].Course.ID != "course-ie-500" || !resp.Data.Rows[0].Planned() {
		t.Fatalf("unexpected row: %+v", resp.Data.Rows[0])
	}
	if resp.Data.Summary.PlannedECTS != 6 {
		t.Fatalf("expected 6 planned ECTS, got %g", resp.Data.Summary.PlannedECTS)
	}
}

func TestBackupEndpoints(t *testing.T) {
	router := buildTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/plan/selections", gin.H{"courseId": "course-ie-500"})

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/plan/backup", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("backup download failed: %d", recorder.Code)
	}
	if disposition := recorder.Header().Get("Content-Disposition"); !strings.Contains(disposition, "studienplan_backup_") {
		t.Fatalf("unexpected content disposition %q", disposition)
	}
	backup := recorder.Body.Bytes()

	// Import without confirmation is rejected.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan/backup", bytes.NewReader(backup))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed import must be 400, got %d", rec.Code)
	}

	doJSON(t, router, http.MethodDelete, "/api/v1/plan?confirm=true", nil)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/plan/backup?confirm=true", bytes.NewReader(backup))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("import failed: %d %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Imported int `json:"imported"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("import response is not valid JSON: %v", err)
	}
	if resp.Data.Imported != 1 {
		t.Fatalf("expected 1 imported selection, got %d", resp.Data.Imported)
	}
}

func TestExportEndpoint(t *testing.T) {
	router := buildTestRouter(t)

	payload := gin.H{"selections": []models.Selection{
		{SelectionID: "s1", CourseID: "course-ie-500", Status: models.StatusPlanned},
	}}

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/export/markdown", payload)
	if recorder.Code != http.StatusOK {
		t.Fatalf("export failed: %d %s", recorder.Code, recorder.Body.String())
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "text/markdown" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(recorder.Body.String(), "Data Mining I") {
		t.Fatal("export missing the planned course")
	}

	recorder = doJSON(t, router, http.MethodPost, "/api/v1/export/pdf", payload)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("unknown format must be 400, got %d", recorder.Code)
	}
	if code := errorCode(t, recorder); code != dto.ErrorCodeUnknownFormat {
		t.Fatalf("expected %s, got %s", dto.ErrorCodeUnknownFormat, code)
	}
}

func TestCatalogAndHealthEndpoints(t *testing.T) {
	router := buildTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/catalog", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("catalog failed: %d", recorder.Code)
	}
	var resp struct {
		Data dto.CatalogResponse `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("catalog response is not valid JSON: %v", err)
	}
	if len(resp.Data.Courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(resp.Data.Courses))
	}
	if resp.Data.Rules.TotalECTS != 120 {
		t.Fatalf("expected 120 ECTS target, got %g", resp.Data.Rules.TotalECTS)
	}

	recorder = doJSON(t, router, http.MethodGet, "/api/health", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("health failed: %d", recorder.Code)
	}
	var health dto.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &health); err != nil {
		t.Fatalf("health response is not valid JSON: %v", err)
	}
	if health.Status != "healthy" {
		t.Fatalf("unexpected health status %q", health.Status)
	}

	recorder = doJSON(t, router, http.MethodGet, "/metrics", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("metrics scrape failed: %d", recorder.Code)
	}
}
