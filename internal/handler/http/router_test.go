package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCalendarService struct {
	lastFleet calendar.FleetSummaryQuery
}

func (s *stubCalendarService) GetEmployeeCalendar(ctx context.Context, query calendar.EmployeeCalendarQuery) (calendar.EmployeeCalendarResponse, error) {
	if err := query.Validate(); err != nil {
		return calendar.EmployeeCalendarResponse{}, err
	}
	// echo the negotiated locale so tests can observe the middleware
	return calendar.EmployeeCalendarResponse{
		EmployeeID:   query.EmployeeID,
		EmployeeName: i18n.LocaleFromContext(ctx),
		StartDate:    query.StartDate,
		EndDate:      query.EndDate,
	}, nil
}

func (s *stubCalendarService) GetFleetSummary(ctx context.Context, query calendar.FleetSummaryQuery) (calendar.FleetSummaryResponse, error) {
	s.lastFleet = query
	return calendar.FleetSummaryResponse{StartDate: query.StartDate, EndDate: query.EndDate}, nil
}

func (s *stubCalendarService) GetLeaveLanes(ctx context.Context, query calendar.LeaveLaneQuery) (calendar.LeaveLaneResponse, error) {
	return calendar.LeaveLaneResponse{StartDate: query.StartDate, EndDate: query.EndDate, LaneCount: 2}, nil
}

type stubLeaveService struct{}

func (stubLeaveService) ListRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	return []leave.LeaveRequestResponse{{ID: "lr-1", Status: "pending"}}, nil
}

func (stubLeaveService) GetRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	if id != "lr-1" {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}
	return leave.LeaveRequestResponse{ID: id}, nil
}

func (stubLeaveService) Approve(ctx context.Context, req leave.ApproveLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
}

func (stubLeaveService) Reject(ctx context.Context, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	return leave.LeaveRequestResponse{ID: req.ID, Status: "rejected"}, nil
}

func (stubLeaveService) Cancel(ctx context.Context, req leave.CancelLeaveRequest) (leave.LeaveRequestResponse, error) {
	return leave.LeaveRequestResponse{ID: req.ID, Status: "cancelled"}, nil
}

type stubImportService struct {
	uploaded importer.UploadRequest
	commit   importer.CommitRequest
}

func (s *stubImportService) Upload(ctx context.Context, req importer.UploadRequest) (importer.SessionResponse, error) {
	s.uploaded = req
	return importer.SessionResponse{ID: "sess-1", Step: importer.StepMapping, FileName: req.FileName}, nil
}

func (s *stubImportService) GetSession(ctx context.Context, id string) (importer.SessionResponse, error) {
	return importer.SessionResponse{}, importer.ErrSessionNotFound
}

func (s *stubImportService) UpdateMapping(ctx context.Context, id string, req importer.UpdateMappingRequest) (importer.SessionResponse, error) {
	return importer.SessionResponse{}, importer.ErrColumnAlreadyBound
}

func (s *stubImportService) Preview(ctx context.Context, id string) (importer.SessionResponse, error) {
	return importer.SessionResponse{}, importer.ErrInvalidTransition
}

func (s *stubImportService) Back(ctx context.Context, id string) (importer.SessionResponse, error) {
	return importer.SessionResponse{ID: id, Step: importer.StepUpload}, nil
}

func (s *stubImportService) Commit(ctx context.Context, id string, req importer.CommitRequest) (importer.SessionResponse, error) {
	s.commit = req
	if !req.SkipInvalid {
		return importer.SessionResponse{}, importer.ErrUnresolvedRows
	}
	return importer.SessionResponse{ID: id, Step: importer.StepResult}, nil
}

func (s *stubImportService) Discard(ctx context.Context, id string) error {
	return nil
}

func (s *stubImportService) ExpireSessions(ctx context.Context) (int, error) {
	return 0, nil
}

type testServer struct {
	handler  http.Handler
	calendar *stubCalendarService
	imports  *stubImportService
}

func newTestServer() testServer {
	i18n.Init("en")
	cal := &stubCalendarService{}
	imp := &stubImportService{}
	app := config.AppConfig{Name: "hris-attendance-test", Version: "test", Env: "test", LogLevel: "error"}
	return testServer{
		handler:  NewRouter(app, NewCalendarHandler(cal), NewLeaveHandler(stubLeaveService{}), NewImportHandler(imp, 1<<10)),
		calendar: cal,
		imports:  imp,
	}
}

func (s testServer) do(req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func errorCode(body map[string]any) string {
	detail, _ := body["error"].(map[string]any)
	code, _ := detail["code"].(string)
	return code
}

func TestRouter_Calendar(t *testing.T) {
	srv := newTestServer()

	t.Run("valid query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/calendar?employee_id=e1&start_date=2026-02-01&end_date=2026-02-28", nil)
		rec, body := srv.do(req)
		require.Equal(t, http.StatusOK, rec.Code)

		data := body["data"].(map[string]any)
		assert.Equal(t, "e1", data["employee_id"])
		assert.Equal(t, "en", data["employee_name"])
	})

	t.Run("missing dates is a validation error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/calendar?employee_id=e1", nil)
		rec, body := srv.do(req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(body))
	})

	t.Run("locale negotiation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/calendar?employee_id=e1&start_date=2026-02-01&end_date=2026-02-28", nil)
		req.Header.Set("Accept-Language", "id-ID,id;q=0.9,en;q=0.8")
		_, body := srv.do(req)
		assert.Equal(t, "id", body["data"].(map[string]any)["employee_name"])

		req = httptest.NewRequest(http.MethodGet, "/api/v1/attendance/calendar?employee_id=e1&start_date=2026-02-01&end_date=2026-02-28&lang=en", nil)
		req.Header.Set("Accept-Language", "id")
		_, body = srv.do(req)
		assert.Equal(t, "en", body["data"].(map[string]any)["employee_name"])

		req = httptest.NewRequest(http.MethodGet, "/api/v1/attendance/calendar?employee_id=e1&start_date=2026-02-01&end_date=2026-02-28", nil)
		req.Header.Set("Accept-Language", "fr-FR")
		_, body = srv.do(req)
		assert.Equal(t, "en", body["data"].(map[string]any)["employee_name"])
	})
}

func TestRouter_FleetSummary(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/summary?start_date=2026-02-01&end_date=2026-02-28&employee_id=e1,e2&employee_id=e3&include_days=true", nil)
	rec, _ := srv.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"e1", "e2", "e3"}, srv.calendar.lastFleet.EmployeeIDs)
	assert.True(t, srv.calendar.lastFleet.IncludeDays)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/attendance/summary?start_date=2026-02-01&end_date=2026-02-28&include_days=maybe", nil)
	rec, body := srv.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(body))
}

func TestRouter_Leave(t *testing.T) {
	srv := newTestServer()

	rec, body := srv.do(httptest.NewRequest(http.MethodGet, "/api/v1/leave/lanes?start_date=2026-02-01&end_date=2026-02-28", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, body["data"].(map[string]any)["lane_count"])

	rec, body = srv.do(httptest.NewRequest(http.MethodGet, "/api/v1/leave/requests/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	rec, body = srv.do(httptest.NewRequest(http.MethodPost, "/api/v1/leave/requests/lr-1/approve", bytes.NewBufferString(`{"approver_id":"mgr-1"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", errorCode(body))

	rec, _ = srv.do(httptest.NewRequest(http.MethodPost, "/api/v1/leave/requests/lr-1/approve", bytes.NewBufferString(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = srv.do(httptest.NewRequest(http.MethodPost, "/api/v1/leave/requests/lr-1/cancel", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cancelled", body["data"].(map[string]any)["status"])

	rec, body = srv.do(httptest.NewRequest(http.MethodGet, "/api/v1/leave/requests", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["meta"].(map[string]any)["total_items"])
}

func multipartUpload(t *testing.T, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/imports", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestRouter_Imports(t *testing.T) {
	srv := newTestServer()

	t.Run("upload", func(t *testing.T) {
		rec, body := srv.do(multipartUpload(t, "feb.csv", []byte("NIK,Tanggal\nEMP-1,2026-02-02\n")))
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "sess-1", body["data"].(map[string]any)["id"])
		assert.Equal(t, "feb.csv", srv.imports.uploaded.FileName)
		assert.Contains(t, string(srv.imports.uploaded.Data), "EMP-1")
	})

	t.Run("upload without file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/imports", bytes.NewBufferString("plain"))
		req.Header.Set("Content-Type", "text/plain")
		rec, _ := srv.do(req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("upload too large", func(t *testing.T) {
		rec, body := srv.do(multipartUpload(t, "big.csv", bytes.Repeat([]byte("a"), 3<<20)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "PAYLOAD_TOO_LARGE", errorCode(body))
	})

	t.Run("error mapping", func(t *testing.T) {
		rec, _ := srv.do(httptest.NewRequest(http.MethodGet, "/api/v1/attendance/imports/sess-x", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec, _ = srv.do(httptest.NewRequest(http.MethodPut, "/api/v1/attendance/imports/sess-1/mapping", bytes.NewBufferString(`{"bindings":{"date":0}}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec, _ = srv.do(httptest.NewRequest(http.MethodPost, "/api/v1/attendance/imports/sess-1/preview", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("commit body is optional", func(t *testing.T) {
		rec, _ := srv.do(httptest.NewRequest(http.MethodPost, "/api/v1/attendance/imports/sess-1/commit", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)

		rec, body := srv.do(httptest.NewRequest(http.MethodPost, "/api/v1/attendance/imports/sess-1/commit", bytes.NewBufferString(`{"skip_invalid":true}`)))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, srv.imports.commit.SkipInvalid)
		assert.Equal(t, "result", body["data"].(map[string]any)["step"])
	})

	t.Run("discard", func(t *testing.T) {
		rec, _ := srv.do(httptest.NewRequest(http.MethodDelete, "/api/v1/attendance/imports/sess-1", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestServer()
	rec, _ := srv.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
