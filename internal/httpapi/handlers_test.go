package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/contract"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/service"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/testutil"
)

type testServer struct {
	store   *db.Store
	handler http.Handler
}

func newTestServer(t *testing.T, manual ...string) *testServer {
	t.Helper()
	store := testutil.NewTestStore(t, manual...)
	svcs, err := service.NewServices(store, nil)
	require.NoError(t, err)
	h := NewHandler(Services{
		Plan:         svcs.Plan,
		Stakeholders: svcs.Stakeholders,
		Updates:      svcs.Updates,
		Prioritize:   svcs.Prioritize,
	}, Options{Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	})})
	return &testServer{store: store, handler: h}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestPlan_PatchThenList(t *testing.T) {
	for _, manual := range [][]string{nil, {"plan"}} {
		s := newTestServer(t, manual...)
		uc := testutil.SeedUseCase(t, s.store, "http plan", testutil.WithUseCaseID(42))
		require.Equal(t, int64(42), uc)

		body := `{"items":[{"usecasephaseid":1,"startdate":"2025-01-01","enddate":"2025-02-01"},{"usecasephaseid":2,"startdate":"2025-02-02","enddate":"2025-03-01"}],"editorEmail":"a@example.com"}`
		rec := s.do(t, http.MethodPatch, "/api/usecases/42/plan", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

		first := decodeBody[contract.ListResponse[contract.PlanEntryResponse]](t, rec)
		require.True(t, first.OK)
		require.Len(t, first.Items, 2)

		rec = s.do(t, http.MethodPatch, "/api/usecases/42/plan", body)
		require.Equal(t, http.StatusOK, rec.Code)
		second := decodeBody[contract.ListResponse[contract.PlanEntryResponse]](t, rec)
		for i := range first.Items {
			assert.Equal(t, first.Items[i].ID, second.Items[i].ID, "resubmit updates in place")
		}

		rec = s.do(t, http.MethodGet, "/api/usecases/42/plan", "")
		require.Equal(t, http.StatusOK, rec.Code)
		listed := decodeBody[contract.ListResponse[contract.PlanEntryResponse]](t, rec)
		assert.Len(t, listed.Items, 2)
	}
}

func TestPlan_ErrorStatuses(t *testing.T) {
	s := newTestServer(t)
	testutil.SeedUseCase(t, s.store, "errors", testutil.WithUseCaseID(1))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   contract.ErrorCode
	}{
		{"bad id", http.MethodPatch, "/api/usecases/abc/plan", `{"items":[]}`, http.StatusBadRequest, contract.ErrCodeValidation},
		{"malformed body", http.MethodPatch, "/api/usecases/1/plan", `{"items":`, http.StatusBadRequest, contract.ErrCodeValidation},
		{"invalid item", http.MethodPatch, "/api/usecases/1/plan", `{"items":[{"usecasephaseid":0}]}`, http.StatusBadRequest, contract.ErrCodeValidation},
		{"unknown parent", http.MethodPatch, "/api/usecases/999/plan", `{"items":[{"usecasephaseid":1}]}`, http.StatusNotFound, contract.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			body := decodeBody[contract.ErrorResponse](t, rec)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestStakeholders_SingleAndBatch(t *testing.T) {
	s := newTestServer(t, "stakeholder")
	testutil.SeedUseCase(t, s.store, "people", testutil.WithUseCaseID(7))
	owner := testutil.SeedRole(t, s.store, "Owner")

	rec := s.do(t, http.MethodPost, "/api/usecases/7/stakeholders", `{"roleId":`+itoa(owner)+`,"stakeholderEmail":" Pat@Example.com "}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[contract.ItemResponse[contract.StakeholderResponse]](t, rec)
	assert.Equal(t, "pat@example.com", created.Item.StakeholderEmail)
	assert.Equal(t, "Owner", created.Item.RoleName)
	assert.Equal(t, "pat@example.com", created.Item.EditorEmail)

	rec = s.do(t, http.MethodPatch, "/api/usecases/7/stakeholders", `{"id":`+itoa(created.Item.ID)+`,"roleId":`+itoa(owner)+`,"stakeholderEmail":"sam@example.com","editorEmail":"admin@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	patched := decodeBody[contract.ItemResponse[contract.StakeholderResponse]](t, rec)
	assert.Equal(t, created.Item.ID, patched.Item.ID)
	assert.Equal(t, "sam@example.com", patched.Item.StakeholderEmail)

	rec = s.do(t, http.MethodPatch, "/api/usecases/7/stakeholders", `{"id":9999,"roleId":`+itoa(owner)+`,"stakeholderEmail":"x@example.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/usecases/7/stakeholders", `{"roleId":`+itoa(owner)+`,"stakeholderEmail":"x@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/usecases/7/stakeholders", `{"items":[{"roleId":`+itoa(owner)+`,"stakeholderEmail":"a@example.com"},{"roleId":`+itoa(owner)+`,"stakeholderEmail":"b@example.com"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/usecases/7/stakeholders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decodeBody[contract.ListResponse[contract.StakeholderResponse]](t, rec)
	assert.Len(t, listed.Items, 3)
}

func TestUpdates_RequireStakeholder(t *testing.T) {
	s := newTestServer(t)
	testutil.SeedUseCase(t, s.store, "progress", testutil.WithUseCaseID(3), testutil.WithPhase(2), testutil.WithStatus(5))
	owner := testutil.SeedRole(t, s.store, "Owner")

	rec := s.do(t, http.MethodPost, "/api/usecases/3/updates", `{"meaningfulUpdate":"kickoff","editorEmail":"stranger@example.com"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
	assert.Equal(t, contract.ErrCodeNotStakeholder, decodeBody[contract.ErrorResponse](t, rec).Code)

	rec = s.do(t, http.MethodPost, "/api/usecases/3/stakeholders", `{"roleId":`+itoa(owner)+`,"stakeholderEmail":"pat@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/usecases/3/updates", `{"meaningfulUpdate":"kickoff","editorEmail":"PAT@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	added := decodeBody[contract.ItemResponse[contract.UpdateResponse]](t, rec)
	require.NotNil(t, added.Item.RoleID)
	assert.Equal(t, owner, *added.Item.RoleID)
	require.NotNil(t, added.Item.UseCasePhaseID)
	assert.Equal(t, int64(2), *added.Item.UseCasePhaseID)

	rec = s.do(t, http.MethodGet, "/api/usecases/3/updates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[contract.ListResponse[contract.UpdateResponse]](t, rec).Items, 1)
}

func TestPrioritize_CreatedThenUpdated(t *testing.T) {
	s := newTestServer(t)
	testutil.SeedUseCase(t, s.store, "rice", testutil.WithUseCaseID(5))

	rec := s.do(t, http.MethodGet, "/api/usecases/5/prioritize", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/usecases/5/prioritize", `{"reach":"100","impact":2,"confidence":0.5,"effort":"4","editorEmail":"a@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[contract.ItemResponse[contract.PrioritizationResponse]](t, rec)
	require.NotNil(t, created.Item.RICEScore)
	assert.InDelta(t, 25.0, *created.Item.RICEScore, 1e-9)

	rec = s.do(t, http.MethodPatch, "/api/usecases/5/prioritize", `{"priority":2,"editorEmail":"a@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/usecases/5/prioritize", "")
	require.Equal(t, http.StatusOK, rec.Code)
	current := decodeBody[contract.ItemResponse[contract.PrioritizationResponse]](t, rec)
	assert.Equal(t, created.Item.ID, current.Item.ID)
	require.NotNil(t, current.Item.Priority)
	assert.Equal(t, int64(2), *current.Item.Priority)

	rec = s.do(t, http.MethodPatch, "/api/usecases/5/prioritize", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/usecases/5/prioritize", `{"priority":2.5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "fractional priority")

	rec = s.do(t, http.MethodPatch, "/api/usecases/5/prioritize", `{"displayInGallery":"yes","timespanId":"3"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	current = decodeBody[contract.ItemResponse[contract.PrioritizationResponse]](t, rec)
	require.NotNil(t, current.Item.DisplayInGallery)
	assert.True(t, *current.Item.DisplayInGallery)
	assert.Equal(t, int64(3), *current.Item.TimespanID)
	assert.Equal(t, int64(2), *current.Item.Priority)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "metrics", rec.Body.String())
}

func TestRequestID_Propagates(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusFor(contract.ErrCodeContention))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(contract.ErrCodeSchemaMode))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(contract.ErrCodePersistence))
}
