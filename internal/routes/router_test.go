package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo-lists/backend/internal/logging"
	"go-todo-lists/backend/internal/routes"
	"go-todo-lists/backend/testutil"
)

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	tdb := testutil.SetupTestDB(t)
	r := testutil.SetupTestRouter(t, tdb, nil)

	w := testutil.DoJSON(t, r, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	_, err := uuid.Parse(w.Header().Get(routes.RequestIDHeader))
	assert.NoError(t, err, "generated request id should be a UUID")
}

func TestRequestLogger_KeepsIncomingRequestID(t *testing.T) {
	tdb := testutil.SetupTestDB(t)
	r := testutil.SetupTestRouter(t, tdb, nil)

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set(routes.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(routes.RequestIDHeader))
}

func TestRequestLogger_ErrorRecordCarriesRequestContext(t *testing.T) {
	tdb := testutil.SetupTestDB(t)
	_, err := tdb.DB.Exec("DROP TABLE todo_item")
	require.NoError(t, err)

	var buf bytes.Buffer
	logger, err := logging.New(&buf, logging.Options{Format: "json", Version: "test"})
	require.NoError(t, err)
	r := testutil.SetupTestRouter(t, tdb, logger)

	req := httptest.NewRequest(http.MethodGet, "/todos/1/items", nil)
	req.Header.Set(routes.RequestIDHeader, "req-err")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	require.Len(t, records, 2)

	errRec := records[0]
	assert.Equal(t, "ERROR", errRec["level"])
	assert.Equal(t, "req-err", errRec["request_id"])
	assert.Equal(t, "get_items", errRec["handler"])
	assert.Equal(t, "test", errRec["v"])
	assert.Contains(t, errRec["cause"], "todo_item")

	accessRec := records[1]
	assert.Equal(t, "request completed", accessRec["msg"])
	assert.Equal(t, float64(http.StatusInternalServerError), accessRec["status"])
	assert.Equal(t, "/todos/1/items", accessRec["path"])
}

func TestCORS_Preflight(t *testing.T) {
	tdb := testutil.SetupTestDB(t)
	r := testutil.SetupTestRouter(t, tdb, nil)

	req := httptest.NewRequest(http.MethodOptions, "/todos", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
