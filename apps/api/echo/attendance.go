package echoapi

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lamms/lamms/core"
	"github.com/lamms/lamms/core/attendance"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type attendanceApi struct {
	provider *attendance.Provider
}

func registerAttendanceAPI(g *echo.Group, provider *attendance.Provider) {
	api := attendanceApi{provider: provider}

	ag := g.Group("/attendance")
	ag.GET("/students", api.queryStudents)
	ag.POST("/students", api.addStudent)
	ag.GET("/students/:id", api.retrieveStudent)
	ag.POST("/students/:id/records", api.recordAttendance)
	ag.GET("/records", api.queryRecords)
	ag.GET("/records/summary", api.summary)
	ag.GET("/report.xlsx", api.report)
	ag.POST("/report.xlsx", api.importReport)
}

func (api *attendanceApi) queryStudents(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	gradeLevel, sec := ctx.QueryParam("grade"), ctx.QueryParam("section")

	var students []attendance.Student
	var err error
	switch {
	case gradeLevel != "" && sec != "":
		students, err = api.provider.GetStudentsByGradeAndSection(reqCtx, gradeLevel, sec)
	case gradeLevel != "":
		students, err = api.provider.GetStudentsByGrade(reqCtx, gradeLevel)
	case sec != "":
		students, err = api.provider.GetStudentsBySection(reqCtx, sec)
	default:
		students, err = api.provider.GetData(reqCtx)
	}
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []attendance.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *attendanceApi) retrieveStudent(ctx echo.Context) error {
	student, ok, err := api.provider.GetStudentByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding student by ID")
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, student)
}

func (api *attendanceApi) addStudent(ctx echo.Context) error {
	var data attendance.Student
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Student")
	}
	student, err := api.provider.AddStudent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	return ctx.JSON(http.StatusCreated, student)
}

func (api *attendanceApi) recordAttendance(ctx echo.Context) error {
	var data attendance.AttendanceRecord
	if err := decodeJSON(ctx, &data); err != nil {
		return err
	}
	rec, err := api.provider.RecordAttendance(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "recording attendance")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *attendanceApi) queryRecords(ctx echo.Context) error {
	records := api.provider.GetAttendanceForSubject(ctx.Request().Context(), ctx.QueryParam("subject"))
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) summary(ctx echo.Context) error {
	records := api.provider.GetAttendanceForSubject(ctx.Request().Context(), ctx.QueryParam("subject"))
	return ctx.JSON(http.StatusOK, attendance.Summary(records))
}

func (api *attendanceApi) report(ctx echo.Context) error {
	records := api.provider.GetAttendanceForSubject(ctx.Request().Context(), ctx.QueryParam("subject"))

	var buf bytes.Buffer
	if err := attendance.WriteReport(&buf, records); err != nil {
		return errors.Wrap(err, "writing attendance report")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="attendance-report.xlsx"`)
	return ctx.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

type importResult struct {
	ImportedCount int                           `json:"importedCount"`
	Records       []attendance.AttendanceRecord `json:"records"`
	Summary       map[string]int                `json:"summary"`
}

// importReport records every row of an uploaded workbook (form field "file").
func (api *attendanceApi) importReport(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "file", Error: "required"})
	}
	file, err := fh.Open()
	if err != nil {
		return errors.Wrapf(err, "opening uploaded file %s", fh.Filename)
	}
	defer func() { _ = file.Close() }()

	rows, err := attendance.ReadReport(file)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "file", Error: "must be an attendance report workbook"})
	}

	reqCtx := ctx.Request().Context()
	records := make([]attendance.AttendanceRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := api.provider.RecordAttendance(reqCtx, row.StudentID, row)
		if err != nil {
			return errors.Wrap(err, "recording attendance")
		}
		records = append(records, rec)
	}
	return ctx.JSON(http.StatusOK, importResult{
		ImportedCount: len(records),
		Records:       records,
		Summary:       attendance.Summary(records),
	})
}
