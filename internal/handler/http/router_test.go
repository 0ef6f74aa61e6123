package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/jwt"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/sse"
	"github.com/sitecrew/sitecrew-backend-go/internal/repository/memory"
	attendanceService "github.com/sitecrew/sitecrew-backend-go/internal/service/attendance"
	paymentService "github.com/sitecrew/sitecrew-backend-go/internal/service/payment"
	payoutService "github.com/sitecrew/sitecrew-backend-go/internal/service/payout"
	siteService "github.com/sitecrew/sitecrew-backend-go/internal/service/site"
	workerService "github.com/sitecrew/sitecrew-backend-go/internal/service/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

func newTestRouter(t *testing.T) (*chi.Mux, jwt.Service, *sse.Hub) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := memory.NewStore()

	siteSvc := siteService.NewSiteService(store.Sites())
	workerSvc := workerService.NewWorkerService(store.Workers(), siteSvc)
	attendanceSvc := attendanceService.NewAttendanceService(store.Attendance(), siteSvc, store.Workers(), logger)
	paymentSvc := paymentService.NewPaymentService(store.Payments(), siteSvc, workerSvc, store.Workers())
	payoutSvc := payoutService.NewPayoutService(
		payoutService.NewCalculator(logger),
		siteSvc,
		workerSvc,
		store.Workers(),
		store.Attendance(),
		store.Payments(),
	)

	hub := sse.NewHub()
	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h")
	router := NewRouter(jwtSvc, logger, []string{"http://localhost:3000"}, Handlers{
		Site:       NewSiteHandler(siteSvc),
		Worker:     NewWorkerHandler(workerSvc),
		Attendance: NewAttendanceHandler(attendanceSvc, hub),
		Payment:    NewPaymentHandler(paymentSvc, hub),
		Payout:     NewPayoutHandler(payoutSvc),
		Events:     NewEventsHandler(siteSvc, hub),
	})
	return router, jwtSvc, hub
}

func accessToken(t *testing.T, jwtSvc jwt.Service, uid string) string {
	t.Helper()
	token, _, err := jwtSvc.GenerateAccessToken(uid, uid+"@example.com")
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	}
	return w, resp
}

func dataOf(t *testing.T, resp map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", resp)
	return data
}

func createSite(t *testing.T, h http.Handler, token, name string) string {
	t.Helper()
	w, resp := doJSON(t, h, http.MethodPost, "/api/v1/sites", token, map[string]interface{}{"name": name})
	require.Equal(t, http.StatusCreated, w.Code)
	return dataOf(t, resp)["id"].(string)
}

func createWorker(t *testing.T, h http.Handler, token, siteID string, body map[string]interface{}) string {
	t.Helper()
	body["site_id"] = siteID
	w, resp := doJSON(t, h, http.MethodPost, "/api/v1/workers", token, body)
	require.Equal(t, http.StatusCreated, w.Code)
	return dataOf(t, resp)["id"].(string)
}

func TestRouter_Health(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	router, jwtSvc, _ := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodGet, "/api/v1/sites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/sites", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, noOwner, err := jwtSvc.JWTAuth().Encode(map[string]interface{}{"type": "access"})
	require.NoError(t, err)
	w, resp := doJSON(t, router, http.MethodGet, "/api/v1/sites", noOwner, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, resp["success"].(bool))

	_, refresh, err := jwtSvc.JWTAuth().Encode(map[string]interface{}{"type": "refresh", jwt.OwnerClaim: "owner-1"})
	require.NoError(t, err)
	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/sites", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSiteHandler_Lifecycle(t *testing.T) {
	router, jwtSvc, _ := newTestRouter(t)
	token := accessToken(t, jwtSvc, "owner-1")

	siteID := createSite(t, router, token, "Tower A")

	w, resp := doJSON(t, router, http.MethodGet, "/api/v1/sites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 1)

	w, resp = doJSON(t, router, http.MethodPut, "/api/v1/sites/"+siteID, token, map[string]interface{}{"location": "Block 7"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tower A", dataOf(t, resp)["name"])
	assert.Equal(t, "Block 7", dataOf(t, resp)["location"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/sites/"+siteID+"/archive", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = doJSON(t, router, http.MethodGet, "/api/v1/sites/archived", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 1)

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/sites/"+siteID+"/restore", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, "/api/v1/sites/"+siteID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = doJSON(t, router, http.MethodGet, "/api/v1/sites/"+siteID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", resp["error"].(map[string]interface{})["code"])
}

func TestSiteHandler_Errors(t *testing.T) {
	router, jwtSvc, _ := newTestRouter(t)
	token := accessToken(t, jwtSvc, "owner-1")

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/sites", token, "invalid json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/sites", token, map[string]interface{}{"name": "  "})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	details := resp["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Contains(t, details, "name")

	siteID := createSite(t, router, token, "Tower A")
	other := accessToken(t, jwtSvc, "owner-2")
	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/sites/"+siteID, other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWorkerHandler_CreateDefaultsAndValidation(t *testing.T) {
	router, jwtSvc, _ := newTestRouter(t)
	token := accessToken(t, jwtSvc, "owner-1")
	siteID := createSite(t, router, token, "Tower A")

	workerID := createWorker(t, router, token, siteID, map[string]interface{}{"name": "Ravi"})

	w, resp := doJSON(t, router, http.MethodGet, "/api/v1/workers/"+workerID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, resp)
	assert.Equal(t, "Worker", data["role"])
	assert.Equal(t, "day", data["wage_type"])
	assert.NotEmpty(t, data["worker_code"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/workers", token, map[string]interface{}{
		"name": "Asha", "site_id": siteID, "wage_type": "week",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, resp = doJSON(t, router, http.MethodGet, "/api/v1/workers/site/"+siteID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 1)

	w, _ = doJSON(t, router, http.MethodDelete, "/api/v1/workers/"+workerID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/workers/"+workerID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttendanceHandler_MarkAndBulk(t *testing.T) {
	router, jwtSvc, _ := newTestRouter(t)
	token := accessToken(t, jwtSvc, "owner-1")
	siteID := createSite(t, router, token, "Tower A")
	ravi := createWorker(t, router, token, siteID, map[string]interface{}{"name": "Ravi"})
	asha := createWorker(t, router, token, siteID, map[string]interface{}{"name": "Asha"})

	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/attendance/mark", token, map[string]interface{}{
		"worker_id": ravi, "site_id": siteID, "date": "2024-03-01", "status": "present",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "present", dataOf(t, resp)["status"])

	w, resp = doJSON(t, router, http.MethodPost, "/api/v1/attendance/bulk", token, map[string]interface{}{
		"site_id": siteID,
		"date":    "2024-03-01",
		"records": []map[string]interface{}{
			{"worker_id": ravi, "status": "halfday"},
			{"worker_id": asha, "status": "present"},
			{"worker_id": "", "status": "present"},
			{"worker_id": "not-at-site", "status": "present"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, dataOf(t, resp)["updated"])

	w, resp = doJSON(t, router, http.MethodGet, "/api/v1/attendance/site/"+siteID+"?date=2024-03-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	records := resp["data"].([]interface{})
	require.Len(t, records, 2)
	statuses := map[string]string{}
	for _, r := range records {
		rec := r.(map[string]interface{})
		statuses[rec["worker_id"].(string)] = rec["status"].(string)
	}
	assert.Equal(t, map[string]string{ravi: "halfday", asha: "present"}, statuses)

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/attendance/site/"+siteID, token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/attendance", token, map[string]interface{}{
		"worker_id": ravi, "site_id": siteID, "date": "2024-03-02", "status": "late",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPayoutHandler_SalaryFlow(t *testing.T) {
	router, jwtSvc, _ := newTestRouter(t)
	token := accessToken(t, jwtSvc, "owner-1")
	siteID := createSite(t, router, token, "Tower A")
	ravi := createWorker(t, router, token, siteID, map[string]interface{}{
		"name": "Ravi", "wage_rate": "100", "wage_type": "day",
	})

	for date, status := range map[string]string{"2024-03-01": "present", "2024-03-02": "present", "2024-03-03": "halfday"} {
		w, _ := doJSON(t, router, http.MethodPost, "/api/v1/attendance", token, map[string]interface{}{
			"worker_id": ravi, "site_id": siteID, "date": date, "status": status,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/payments", token, map[string]interface{}{
		"worker_id": ravi, "site_id": siteID, "amount": "120", "date": "2024-03-05", "payment_type": "advance",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/payments", token, map[string]interface{}{
		"worker_id": ravi, "site_id": siteID, "amount": "0", "date": "2024-03-05",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, resp := doJSON(t, router, http.MethodGet, "/api/v1/payouts/site/"+siteID+"?from=2024-03-01&to=2024-03-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	results := dataOf(t, resp)["results"].([]interface{})
	require.Len(t, results, 1)
	row := results[0].(map[string]interface{})
	assert.Equal(t, "200", row["total_payout"])
	assert.EqualValues(t, 2, row["days_present"])

	w, resp = doJSON(t, router, http.MethodGet, "/api/v1/payouts/worker/"+ravi+"?from=2024-03-01&to=2024-03-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	slip := dataOf(t, resp)
	assert.Equal(t, "250", slip["total_earned"])
	assert.Equal(t, "120", slip["total_paid"])
	assert.Equal(t, "130", slip["remaining_amount"])
	assert.Equal(t, "Tower A", slip["site"])
	assert.Contains(t, slip["payments_by_type"], "advance")

	w, resp = doJSON(t, router, http.MethodGet, "/api/v1/payments/summary/"+ravi+"?startDate=2024-03-01&endDate=2024-03-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := dataOf(t, resp)["summary"].(map[string]interface{})
	assert.Equal(t, "250", summary["earned_amount"])
	assert.Equal(t, "130", summary["remaining_amount"])
	assert.EqualValues(t, 3, summary["total_days"])

	w, resp = doJSON(t, router, http.MethodGet, "/api/v1/payouts/site/"+siteID+"/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, dataOf(t, resp)["total_workers"])
	assert.Equal(t, "130", dataOf(t, resp)["total_remaining"])

	w, resp = doJSON(t, router, http.MethodGet, "/api/v1/payments/site/"+siteID+"?workerId="+ravi, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 1)
}

func TestPayoutHandler_RangeErrors(t *testing.T) {
	router, jwtSvc, _ := newTestRouter(t)
	token := accessToken(t, jwtSvc, "owner-1")
	siteID := createSite(t, router, token, "Tower A")

	tests := []struct {
		name string
		path string
	}{
		{name: "missing range", path: "/api/v1/payouts/site/" + siteID},
		{name: "missing to", path: "/api/v1/payouts/site/" + siteID + "?from=2024-03-01"},
		{name: "malformed date", path: "/api/v1/payouts/site/" + siteID + "?from=2024-3-1&to=2024-03-31"},
		{name: "inverted range", path: "/api/v1/payouts/site/" + siteID + "?from=2024-04-01&to=2024-03-31"},
		{name: "malformed optional range", path: "/api/v1/payouts/site/" + siteID + "/summary?from=march&to=april"},
		{name: "slip without range", path: "/api/v1/payouts/worker/any"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doJSON(t, router, http.MethodGet, tt.path, token, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "BAD_REQUEST", resp["error"].(map[string]interface{})["code"])
		})
	}
}

func TestEvents_PublishedOnPaymentAndOwnershipChecked(t *testing.T) {
	router, jwtSvc, hub := newTestRouter(t)
	token := accessToken(t, jwtSvc, "owner-1")
	siteID := createSite(t, router, token, "Tower A")
	ravi := createWorker(t, router, token, siteID, map[string]interface{}{"name": "Ravi", "wage_rate": "100"})

	events, cleanup := hub.Subscribe(siteID)
	defer cleanup()

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/payments", token, map[string]interface{}{
		"worker_id": ravi, "site_id": siteID, "amount": "50", "date": "2024-03-05",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	select {
	case ev := <-events:
		assert.Equal(t, EventPaymentRecorded, ev.Event)
	default:
		t.Fatal("expected a payment event")
	}

	other := accessToken(t, jwtSvc, "owner-2")
	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/sites/"+siteID+"/events?token="+other, "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
