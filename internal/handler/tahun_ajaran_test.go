package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arasdyanto/erapor-smk/internal/queue"
	"github.com/arasdyanto/erapor-smk/internal/repository"
)

var taCols = []string{"id", "tahun", "semester", "is_active"}

func tahunAjaranFixture(t *testing.T) (*TahunAjaranHandler, sqlmock.Sqlmock, *[]queue.AuditEvent) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	h := NewTahunAjaranHandler(repository.NewTahunAjaranRepo(db))
	events := &[]queue.AuditEvent{}
	h.Publish = func(ctx context.Context, ev queue.AuditEvent) error {
		*events = append(*events, ev)
		return nil
	}
	return h, mock, events
}

func jsonCtxAs(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("user", adminUser)
	return c, rec
}

func TestTahunAjaranHandler_Create_ActiveDeactivatesAndAudits(t *testing.T) {
	h, mock, events := tahunAjaranFixture(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tahun_ajaran SET is_active=0 WHERE is_active=1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tahun_ajaran")).
		WithArgs(sqlmock.AnyArg(), "2025/2026", "ganjil", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := jsonCtxAs(http.MethodPost, "/api/tahun-ajaran",
		`{"tahun":"2025/2026","semester":"ganjil","is_active":true}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, queue.EventTahunAjaranActivated, ev.Type)
	assert.Equal(t, "2025/2026 ganjil", ev.Detail)
}

func TestTahunAjaranHandler_Create_InactiveSkipsAudit(t *testing.T) {
	h, mock, events := tahunAjaranFixture(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tahun_ajaran")).
		WithArgs(sqlmock.AnyArg(), "2025/2026", "genap", false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := jsonCtxAs(http.MethodPost, "/api/tahun-ajaran",
		`{"tahun":"2025/2026","semester":"genap","is_active":false}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, *events)
}

func TestTahunAjaranHandler_Create_MissingFields(t *testing.T) {
	h, _, _ := tahunAjaranFixture(t)

	c, rec := jsonCtxAs(http.MethodPost, "/api/tahun-ajaran", `{"tahun":"","semester":""}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTahunAjaranHandler_Update_ActivationFlow(t *testing.T) {
	h, mock, events := tahunAjaranFixture(t)

	// Existence check, deactivate-all, targeted update, re-read.
	mock.ExpectQuery(regexp.QuoteMeta("FROM tahun_ajaran WHERE id=?")).
		WithArgs("ta-1").
		WillReturnRows(sqlmock.NewRows(taCols).AddRow("ta-1", "2024/2025", "ganjil", false))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tahun_ajaran SET is_active=0 WHERE is_active=1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tahun_ajaran SET tahun=?, semester=?, is_active=? WHERE id=?")).
		WithArgs("2024/2025", "genap", true, "ta-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM tahun_ajaran WHERE id=?")).
		WithArgs("ta-1").
		WillReturnRows(sqlmock.NewRows(taCols).AddRow("ta-1", "2024/2025", "genap", true))

	c, rec := jsonCtxAs(http.MethodPut, "/api/tahun-ajaran/ta-1",
		`{"tahun":"2024/2025","semester":"genap","is_active":true}`)
	c.SetParamNames("id")
	c.SetParamValues("ta-1")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, *events, 1)
	assert.Equal(t, "ta-1", (*events)[0].EntityID)
}

func TestTahunAjaranHandler_Update_NotFound(t *testing.T) {
	h, mock, _ := tahunAjaranFixture(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tahun_ajaran WHERE id=?")).
		WithArgs("ta-gone").
		WillReturnRows(sqlmock.NewRows(taCols))

	c, rec := jsonCtxAs(http.MethodPut, "/api/tahun-ajaran/ta-gone",
		`{"tahun":"2024/2025","semester":"ganjil","is_active":false}`)
	c.SetParamNames("id")
	c.SetParamValues("ta-gone")
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
