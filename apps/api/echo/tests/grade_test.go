package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lamms/lamms/core/grade"
	"github.com/lamms/lamms/tests"
)

func Test_gradeApi_query(t *testing.T) {
	app := setup(t)

	tstamp := time.Date(2025, 3, 19, 8, 0, 0, 0, time.UTC)
	g1 := testutil.CreateGrade(t, grdRepo, "Grade 1", "G1", true, 1, tstamp)
	g2 := testutil.CreateGrade(t, grdRepo, "Grade 2", "G2", true, 2, tstamp)
	kinder := testutil.CreateGrade(t, grdRepo, "Kinder", "K", false, 0, tstamp)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "default ordering",
			method:   http.MethodGet,
			path:     "/api/grades",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []grade.Grade{kinder, g1, g2}),
		},
		{
			name:     "trailing slash",
			method:   http.MethodGet,
			path:     "/api/grades/",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []grade.Grade{kinder, g1, g2}),
		},
		{
			name:     "ordering",
			method:   http.MethodGet,
			path:     "/api/grades?ordering=-display_order",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []grade.Grade{g2, g1, kinder}),
		},
		{
			name:     "search & is_active",
			method:   http.MethodGet,
			path:     "/api/grades?search=GRADE&is_active=true&ordering=-name",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []grade.Grade{g2, g1}),
		},
		{
			name:     "inactive",
			method:   http.MethodGet,
			path:     "/api/grades?is_active=false",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []grade.Grade{kinder}),
		},
		{
			name:     "no match",
			method:   http.MethodGet,
			path:     "/api/grades?search=zzz",
			wantCode: http.StatusOK,
			wantData: []byte(`[]`),
		},
		{
			name:     "bad ordering",
			method:   http.MethodGet,
			path:     "/api/grades?ordering=password",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"ordering":"cannot order by \"password\""}`),
		},
		{
			name:     "bad is_active",
			method:   http.MethodGet,
			path:     "/api/grades?is_active=maybe",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"is_active":"must be a boolean"}`),
		},
	})
}

func Test_gradeApi_create(t *testing.T) {
	app := setup(t)
	testutil.CreateGrade(t, grdRepo, "Grade 1", "", true, 1)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "missing name",
			method:   http.MethodPost,
			path:     "/api/grades",
			body:     []byte(`{"code":"G2"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"name":"this field is required"}`),
		},
		{
			name:     "blank name",
			method:   http.MethodPost,
			path:     "/api/grades",
			body:     []byte(`{"name":"   "}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"name":"this field is required"}`),
		},
		{
			name:     "negative display order",
			method:   http.MethodPost,
			path:     "/api/grades",
			body:     []byte(`{"name":"Grade 2","display_order":-1}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"display_order":"display_order must be 0 or greater"}`),
		},
		{
			name:     "duplicate name",
			method:   http.MethodPost,
			path:     "/api/grades",
			body:     []byte(`{"name":"  Grade 1 "}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"name":"a grade with this name already exists"}`),
		},
	})

	req, rec := newRequest(http.MethodPost, "/api/grades", []byte(`{"name":" Grade 2 ","code":"G2","display_order":2}`))
	app.ServeHTTP(rec, req)
	if assert.Equal(t, http.StatusCreated, rec.Code) {
		var got grade.Grade
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 2, got.ID)
		assert.Equal(t, "Grade 2", got.Name)
		assert.Equal(t, "G2", got.Code.String)
		assert.True(t, got.IsActive)
		assert.Equal(t, 2, got.DisplayOrder)
		assert.False(t, got.CreatedAt.IsZero())
	}

	req, rec = newRequest(http.MethodPost, "/api/grades", []byte(`{"name":"Kinder","is_active":false}`))
	app.ServeHTTP(rec, req)
	if assert.Equal(t, http.StatusCreated, rec.Code) {
		var got grade.Grade
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.False(t, got.IsActive)
		assert.False(t, got.Code.Valid)
	}
}

func Test_gradeApi_detail(t *testing.T) {
	app := setup(t)

	tstamp := time.Date(2025, 3, 19, 8, 0, 0, 0, time.UTC)
	g1 := testutil.CreateGrade(t, grdRepo, "Grade 1", "G1", true, 1, tstamp)
	testutil.CreateGrade(t, grdRepo, "Grade 2", "G2", true, 2, tstamp)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "retrieve",
			method:   http.MethodGet,
			path:     "/api/grades/1",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, g1),
		},
		{
			name:     "unknown id",
			method:   http.MethodGet,
			path:     "/api/grades/99",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFound),
		},
		{
			name:     "non integer id",
			method:   http.MethodGet,
			path:     "/api/grades/abc",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFound),
		},
		{
			name:     "update to a taken name",
			method:   http.MethodPut,
			path:     "/api/grades/1",
			body:     []byte(`{"name":"Grade 2"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"name":"a grade with this name already exists"}`),
		},
		{
			name:     "update unknown",
			method:   http.MethodPut,
			path:     "/api/grades/99",
			body:     []byte(`{"name":"Grade 9"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFound),
		},
		{
			name:     "deactivate unknown",
			method:   http.MethodPost,
			path:     "/api/grades/99/deactivate",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFound),
		},
		{
			name:     "delete unknown",
			method:   http.MethodDelete,
			path:     "/api/grades/99",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFound),
		},
	})

	t.Run("update keeps omitted fields", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/api/grades/1", []byte(`{"display_order":5}`))
		app.ServeHTTP(rec, req)
		if assert.Equal(t, http.StatusOK, rec.Code) {
			var got grade.Grade
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, "Grade 1", got.Name)
			assert.Equal(t, "G1", got.Code.String)
			assert.Equal(t, 5, got.DisplayOrder)
			assert.Equal(t, tstamp, got.CreatedAt)
		}
	})

	t.Run("deactivate", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/grades/1/deactivate")
		app.ServeHTTP(rec, req)
		if assert.Equal(t, http.StatusOK, rec.Code) {
			var got grade.Grade
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.False(t, got.IsActive)
		}
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/api/grades/1")
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		req, rec = newRequest(http.MethodGet, "/api/grades/1")
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
