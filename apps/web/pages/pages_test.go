package pages

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"

	"github.com/lamms/lamms/apps/web/router"
	"github.com/lamms/lamms/client"
	"github.com/lamms/lamms/core/attendance"
	"github.com/lamms/lamms/fs"
	"github.com/lamms/lamms/services/logger"
	"github.com/lamms/lamms/services/photo"
)

type call struct {
	op   string
	id   interface{}
	data interface{}
}

// sectionsStub records calls and serves a fixed section list.
type sectionsStub struct {
	sections []map[string]interface{}
	err      error
	calls    []call
}

func (s *sectionsStub) GetSections(context.Context) (client.Body, error) {
	s.calls = append(s.calls, call{op: "get"})
	if s.err != nil {
		return nil, s.err
	}
	data, _ := json.Marshal(s.sections)
	return client.Body(data), nil
}

func (s *sectionsStub) CreateSection(_ context.Context, data interface{}) (client.Body, error) {
	s.calls = append(s.calls, call{op: "create", data: data})
	return nil, s.err
}

func (s *sectionsStub) UpdateSection(_ context.Context, id interface{}, data interface{}) (client.Body, error) {
	s.calls = append(s.calls, call{op: "update", id: id, data: data})
	return nil, s.err
}

func (s *sectionsStub) DeleteSection(_ context.Context, id interface{}) (client.Body, error) {
	s.calls = append(s.calls, call{op: "delete", id: id})
	return nil, s.err
}

func newTestRouter(sections SectionClient) *router.Router {
	students := attendance.NewProvider(photosvc.NewStatic())
	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))
	return router.New("LAMMS", appfs.FS, logger, Loaders(sections, students))
}

func TestViews_render(t *testing.T) {
	stub := &sectionsStub{sections: []map[string]interface{}{
		{"id": 1, "name": "Section A", "gradeLevel": 3, "created_at": "2025-03-19T08:00:00Z"},
		{"id": 2, "name": "Section B", "adviser": "Ms. Cruz"},
	}}
	rt := newTestRouter(stub)

	tests := []struct {
		path         string
		wantContains []string
	}{
		{"/", []string{"Students: <strong>10</strong>", "Maria Clara Santos", "Late: 1"}},
		{"/pages/attendance", []string{"Diego Silang Mendoza", "Juan Dela Cruz", "Traffic"}},
		{"/pages/attendance?grade=3", []string{"Maria Clara Santos", "Diego Silang Mendoza"}},
		{"/pages/report", []string{"/api/attendance/report.xlsx", "Present: 1"}},
		{"/pages/section", []string{"<th>adviser</th>", "<th>gradeLevel</th>", "Section B", "Ms. Cruz", `action="/pages/section/2/delete"`}},
		{"/pages/settings", []string{"<h1>Settings</h1>"}},
		{"/admin", []string{"<span>Sections</span><strong>2</strong>", "<span>Students</span><strong>10</strong>"}},
		{"/admin-graph", []string{"<tr><td>Grade 2</td><td>2</td></tr>", "<tr><td>Grade 6</td><td>2</td></tr>"}},
		{"/admin-teacher", []string{"<h1>Teachers</h1>"}},
		{"/admin-student", []string{"<td>1005</td><td>Gabriela Silang Rivera</td>"}},
		{"/admin-section", []string{"Section A", `action="/admin-section/1/delete"`}},
		{"/admin-settings", []string{"<h1>Admin Settings</h1>"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String()) {
				for _, s := range tt.wantContains {
					assert.Contains(t, rec.Body.String(), s)
				}
			}
		})
	}

	t.Run("grade filter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pages/attendance?grade=3", nil))
		assert.NotContains(t, rec.Body.String(), "Jose Andres Reyes")
	})
}

func TestViews_backendDown(t *testing.T) {
	stub := &sectionsStub{err: &client.ResponseError{Response: &rest.Response{StatusCode: http.StatusBadGateway}}}
	rt := newTestRouter(stub)

	for _, path := range []string{"/pages/section", "/admin-section", "/admin"} {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
	}
}

func TestSectionColumns(t *testing.T) {
	cols := sectionColumns([]map[string]interface{}{
		{"id": 1, "name": "A", "updated_at": "x"},
		{"id": 2, "room": "101", "created_at": "x"},
	})
	assert.Equal(t, []string{"id", "name", "room"}, cols)
	assert.Equal(t, []string{"id"}, sectionColumns(nil))
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSectionActions(t *testing.T) {
	stub := &sectionsStub{}
	e := echo.New()
	RegisterSectionActions(e, stub)

	rec := postForm(e, "/pages/section", url.Values{"name": {"Section C"}, "adviser": {""}, "id": {"9"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/pages/section", rec.Header().Get(echo.HeaderLocation))

	rec = postForm(e, "/admin-section/7", url.Values{"name": {"Section C2"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin-section", rec.Header().Get(echo.HeaderLocation))

	rec = postForm(e, "/admin-section/7/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	assert.Equal(t, []call{
		{op: "create", data: map[string]interface{}{"name": "Section C"}},
		{op: "update", id: "7", data: map[string]interface{}{"name": "Section C2"}},
		{op: "delete", id: "7"},
	}, stub.calls)
}

func TestSectionActions_backendError(t *testing.T) {
	stub := &sectionsStub{err: &client.ResponseError{Response: &rest.Response{StatusCode: http.StatusNotFound}}}
	e := echo.New()
	RegisterSectionActions(e, stub)

	rec := postForm(e, "/pages/section/99/delete", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Request failed with status code 404")
}
