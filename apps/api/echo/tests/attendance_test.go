package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lamms/lamms/core/attendance"
)

func Test_attendanceApi(t *testing.T) {
	app := setup(t)
	ctx := context.Background()

	all, err := students.GetData(ctx)
	if err != nil {
		t.Fatalf("GetData(): %v", err)
	}
	byGrade, _ := students.GetStudentsByGrade(ctx, "3")
	bySection, _ := students.GetStudentsBySection(ctx, "B")
	byBoth, _ := students.GetStudentsByGradeAndSection(ctx, "3", "A")
	gabriela, _, _ := students.GetStudentByID(ctx, "1005")
	records := students.GetAttendanceForSubject(ctx, "")

	runHTTPTests(t, app, []httpTest{
		{
			name:     "all students",
			method:   http.MethodGet,
			path:     "/api/attendance/students",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, all),
		},
		{
			name:     "by grade",
			method:   http.MethodGet,
			path:     "/api/attendance/students?grade=3",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, byGrade),
		},
		{
			name:     "by section",
			method:   http.MethodGet,
			path:     "/api/attendance/students?section=B",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, bySection),
		},
		{
			name:     "by grade and section",
			method:   http.MethodGet,
			path:     "/api/attendance/students?grade=3&section=A",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, byBoth),
		},
		{
			name:     "non numeric grade",
			method:   http.MethodGet,
			path:     "/api/attendance/students?grade=abc",
			wantCode: http.StatusOK,
			wantData: []byte(`[]`),
		},
		{
			name:     "student",
			method:   http.MethodGet,
			path:     "/api/attendance/students/1005",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, gabriela),
		},
		{
			name:     "unknown student",
			method:   http.MethodGet,
			path:     "/api/attendance/students/9999",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFound),
		},
		{
			name:     "add student echoes",
			method:   http.MethodPost,
			path:     "/api/attendance/students",
			body:     []byte(`{"id":2001,"name":"Jose Rizal","gradeLevel":4,"section":"C"}`),
			wantCode: http.StatusCreated,
			wantData: []byte(`{"id":2001,"name":"Jose Rizal","date":"","timeIn":"","timeOut":"","gender":"","gradeLevel":4,"section":"C"}`),
		},
		{
			name:     "record attendance tags the student",
			method:   http.MethodPost,
			path:     "/api/attendance/students/1003/records",
			body:     []byte(`{"date":"2025-03-19","status":"Late"}`),
			wantCode: http.StatusCreated,
			wantData: []byte(`{"date":"2025-03-19","studentName":"","studentId":"1003","status":"Late","time":"","remarks":""}`),
		},
		{
			name:     "record attendance keeps the record's student",
			method:   http.MethodPost,
			path:     "/api/attendance/students/1003/records",
			body:     []byte(`{"studentId":"1004","status":"Present"}`),
			wantCode: http.StatusCreated,
			wantData: []byte(`{"date":"","studentName":"","studentId":"1004","status":"Present","time":"","remarks":""}`),
		},
		{
			name:     "records ignore the subject",
			method:   http.MethodGet,
			path:     "/api/attendance/records?subject=Math",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, records),
		},
		{
			name:     "summary",
			method:   http.MethodGet,
			path:     "/api/attendance/records/summary",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, attendance.Summary(records)),
		},
	})

	t.Run("report", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/attendance/report.xlsx")
		app.ServeHTTP(rec, req)
		if !assert.Equal(t, http.StatusOK, rec.Code) {
			return
		}
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))

		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance-report.xlsx")

		got, err := attendance.ReadReport(bytes.NewReader(rec.Body.Bytes()))
		if assert.NoError(t, err) {
			assert.Equal(t, records, got)
		}
	})
}

func newUploadRequest(t *testing.T, path, field string, content []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if field != "" {
		part, err := w.CreateFormFile(field, "attendance.xlsx")
		if err != nil {
			t.Fatalf("CreateFormFile(): %v", err)
		}
		_, _ = part.Write(content)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("multipart Close(): %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func Test_attendanceApi_importReport(t *testing.T) {
	app := setup(t)

	uploaded := []attendance.AttendanceRecord{
		{Date: "2023-09-18", StudentName: "Juan Dela Cruz", StudentID: "1002", Status: attendance.StatusPresent, Time: "07:55:00 AM", Remarks: ""},
		{Date: "2023-09-18", StudentName: "Maria Clara Santos", StudentID: "1001", Status: attendance.StatusLate, Time: "08:20:00 AM", Remarks: "Traffic"},
		{Date: "2023-09-18", StudentName: "Jose Rizal Mercado", StudentID: "1003", Status: attendance.StatusPresent, Time: "07:50:00 AM", Remarks: ""},
	}
	var workbook bytes.Buffer
	if err := attendance.WriteReport(&workbook, uploaded); err != nil {
		t.Fatalf("WriteReport(): %v", err)
	}

	t.Run("import", func(t *testing.T) {
		req, rec := newUploadRequest(t, "/api/attendance/report.xlsx", "file", workbook.Bytes())
		app.ServeHTTP(rec, req)
		if !assert.Equal(t, http.StatusOK, rec.Code) {
			return
		}

		var got struct {
			ImportedCount int                           `json:"importedCount"`
			Records       []attendance.AttendanceRecord `json:"records"`
			Summary       map[string]int                `json:"summary"`
		}
		if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got)) {
			assert.Equal(t, 3, got.ImportedCount)
			assert.Equal(t, uploaded, got.Records)
			assert.Equal(t, map[string]int{attendance.StatusPresent: 2, attendance.StatusLate: 1}, got.Summary)
		}
	})

	t.Run("no file", func(t *testing.T) {
		req, rec := newUploadRequest(t, "/api/attendance/report.xlsx", "", nil)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"file":"required"}`, rec.Body.String())
	})

	t.Run("not a workbook", func(t *testing.T) {
		req, rec := newUploadRequest(t, "/api/attendance/report.xlsx", "file", []byte("Date,Student Name"))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"file":"must be an attendance report workbook"}`, rec.Body.String())
	})
}
