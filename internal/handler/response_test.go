package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/salmanfarismn/LaborLog/internal/repository"
)

func TestWriteStoreError_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	writeStoreError(rec, repository.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteStoreError_ForeignKeyViolation(t *testing.T) {
	rec := httptest.NewRecorder()
	writeStoreError(rec, &pgconn.PgError{Code: "23503"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestWriteStoreError_UniqueViolation(t *testing.T) {
	rec := httptest.NewRecorder()
	writeStoreError(rec, &pgconn.PgError{Code: "23505"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestWriteStoreError_Unclassified(t *testing.T) {
	rec := httptest.NewRecorder()
	writeStoreError(rec, errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
