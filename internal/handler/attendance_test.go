package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salmanfarismn/LaborLog/internal/domain"
	"github.com/salmanfarismn/LaborLog/internal/repository"
)

// fakeAttendanceStore persists upserts in memory and fails any write naming a
// worker id it does not know, the way the real store fails its foreign key.
type fakeAttendanceStore struct {
	knownWorkers map[int64]bool
	saved        []repository.UpsertAttendanceParams
}

func (f *fakeAttendanceStore) ListByDate(context.Context, time.Time) ([]domain.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceStore) UpsertByDay(_ context.Context, p repository.UpsertAttendanceParams) (*domain.Attendance, error) {
	if !f.knownWorkers[p.WorkerID] {
		return nil, &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
	}
	f.saved = append(f.saved, p)
	return &domain.Attendance{WorkerID: p.WorkerID, Kind: p.Kind}, nil
}

func (f *fakeAttendanceStore) Delete(context.Context, int64) error {
	return nil
}

func postAttendance(t *testing.T, h AttendanceHandler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	if path == "/attendance/bulk" {
		h.bulkSave(rec, req)
	} else {
		h.save(rec, req)
	}
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data is not an object: %s", rec.Body.String())
	return data
}

func entry(workerID int64, kind string) map[string]any {
	return map[string]any{
		"date":     "2026-03-10",
		"workerId": workerID,
		"kind":     kind,
	}
}

func TestBulkSave_PartialFailure(t *testing.T) {
	// GIVEN: five entries, one naming a worker that does not exist
	// WHEN: the batch is saved
	// THEN: four persist, the failure is counted and the batch reports 422
	store := &fakeAttendanceStore{knownWorkers: map[int64]bool{1: true, 2: true, 3: true, 4: true}}
	h := AttendanceHandler{Repo: store}

	rec := postAttendance(t, h, "/attendance/bulk", []map[string]any{
		entry(1, "FULL_DAY"),
		entry(2, "FULL_DAY"),
		entry(3, "HALF_DAY"),
		entry(99, "FULL_DAY"),
		entry(4, "ABSENT"),
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, float64(5), data["total"])
	assert.Equal(t, float64(4), data["saved"])
	assert.Equal(t, float64(1), data["failed"])
	assert.Len(t, store.saved, 4)
}

func TestBulkSave_AllValid(t *testing.T) {
	store := &fakeAttendanceStore{knownWorkers: map[int64]bool{1: true, 2: true}}
	h := AttendanceHandler{Repo: store}

	rec := postAttendance(t, h, "/attendance/bulk", []map[string]any{
		entry(1, "FULL_DAY"),
		entry(2, "HALF_DAY"),
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, float64(2), data["saved"])
	assert.Equal(t, float64(0), data["failed"])
}

func TestBulkSave_InvalidEntryCountedNotFatal(t *testing.T) {
	// A malformed entry (bad kind) is a counted failure; the valid one persists.
	store := &fakeAttendanceStore{knownWorkers: map[int64]bool{1: true}}
	h := AttendanceHandler{Repo: store}

	rec := postAttendance(t, h, "/attendance/bulk", []map[string]any{
		entry(1, "FULL_DAY"),
		entry(1, "VACATION"),
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, float64(1), data["saved"])
	assert.Equal(t, float64(1), data["failed"])
}

func TestBulkSave_EmptyBatchRejected(t *testing.T) {
	h := AttendanceHandler{Repo: &fakeAttendanceStore{}}

	rec := postAttendance(t, h, "/attendance/bulk", []map[string]any{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSave_UnknownWorker_Unprocessable(t *testing.T) {
	// A single upsert hitting the worker foreign key surfaces as 422, not as a
	// raw database error.
	h := AttendanceHandler{Repo: &fakeAttendanceStore{knownWorkers: map[int64]bool{}}}

	rec := postAttendance(t, h, "/attendance", entry(42, "FULL_DAY"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "referenced record does not exist", resp.Message)
}
