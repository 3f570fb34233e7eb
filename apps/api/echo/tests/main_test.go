package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/lamms/lamms/apps/api/echo"
	"github.com/lamms/lamms/core"
	"github.com/lamms/lamms/core/attendance"
	"github.com/lamms/lamms/core/grade"
	"github.com/lamms/lamms/core/section"
	"github.com/lamms/lamms/services/logger"
	"github.com/lamms/lamms/services/photo"
	"github.com/lamms/lamms/storage/database/inmem"
)

var (
	grdRepo  grade.Repository
	secRepo  section.Repository
	students *attendance.Provider

	errNotFound = httpErr{Error: "not found"}
)

// setup returns a server backed by an empty in-memory database.
func setup(t *testing.T) *echoapi.Server {
	t.Helper()

	db := inmemdb.Open()
	grdRepo = inmemdb.NewGradeRepository(db)
	secRepo = inmemdb.NewSectionRepository(db)
	students = attendance.NewProvider(photosvc.NewStatic())

	validate, translator := core.NewValidator()
	return echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       &core.Config{AppName: "LAMMS", TestMode: true},
			Logger:     logsvc.NewStdLogger(log.New(os.Stdout, "API : ", log.LstdFlags)),
			GradeSvc:   grade.NewService(grdRepo),
			SectionSvc: section.NewService(secRepo),
			Students:   students,
			Validate:   validate,
			Translator: translator,
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app *echoapi.Server, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
