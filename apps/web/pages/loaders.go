// Package pages loads the data behind each frontend view and handles the section forms.
package pages

import (
	"context"
	"net/http"
	"sort"

	"github.com/pkg/errors"

	"github.com/lamms/lamms/apps/web/router"
	"github.com/lamms/lamms/client"
	"github.com/lamms/lamms/core/attendance"
)

// SectionClient is the remote section resource.
type SectionClient interface {
	GetSections(ctx context.Context) (client.Body, error)
	CreateSection(ctx context.Context, data interface{}) (client.Body, error)
	UpdateSection(ctx context.Context, id interface{}, data interface{}) (client.Body, error)
	DeleteSection(ctx context.Context, id interface{}) (client.Body, error)
}

var _ SectionClient = (*client.SectionService)(nil) // interface compliance check

type (
	DashboardData struct {
		StudentCount int
		Records      []attendance.AttendanceRecord
		Summary      map[string]int
	}

	AttendanceData struct {
		Grade    string
		Section  string
		Students []attendance.Student
		Records  []attendance.AttendanceRecord
	}

	ReportData struct {
		Records []attendance.AttendanceRecord
		Summary map[string]int
	}

	SectionsData struct {
		Columns  []string
		Sections []map[string]interface{}
	}

	AdminDashboardData struct {
		StudentCount int
		SectionCount int
		Summary      map[string]int
	}

	GradeCount struct {
		GradeLevel int
		Count      int
	}

	GraphData struct {
		ByGrade []GradeCount
		Summary map[string]int
	}

	StudentsData struct {
		Students []attendance.Student
	}
)

type loaders struct {
	sections SectionClient
	students *attendance.Provider
}

// Loaders returns the view loaders keyed by route name. Views without one render static content.
func Loaders(sections SectionClient, students *attendance.Provider) map[string]router.Loader {
	l := loaders{sections: sections, students: students}
	return map[string]router.Loader{
		"dashboard":       l.dashboard,
		"attendance":      l.attendance,
		"report":          l.report,
		"section":         l.sectionList,
		"admin-dashboard": l.adminDashboard,
		"admin-graph":     l.adminGraph,
		"admin-student":   l.adminStudents,
		"admin-section":   l.sectionList,
	}
}

func (l loaders) dashboard(ctx context.Context, r *http.Request) (interface{}, error) {
	students, err := l.students.GetData(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting students")
	}
	records := l.students.GetAttendanceForSubject(ctx, r.URL.Query().Get("subject"))
	return DashboardData{
		StudentCount: len(students),
		Records:      records,
		Summary:      attendance.Summary(records),
	}, nil
}

func (l loaders) attendance(ctx context.Context, r *http.Request) (interface{}, error) {
	q := r.URL.Query()
	data := AttendanceData{Grade: q.Get("grade"), Section: q.Get("section")}

	var err error
	switch {
	case data.Grade != "" && data.Section != "":
		data.Students, err = l.students.GetStudentsByGradeAndSection(ctx, data.Grade, data.Section)
	case data.Grade != "":
		data.Students, err = l.students.GetStudentsByGrade(ctx, data.Grade)
	case data.Section != "":
		data.Students, err = l.students.GetStudentsBySection(ctx, data.Section)
	default:
		data.Students, err = l.students.GetData(ctx)
	}
	if err != nil {
		return nil, errors.Wrap(err, "getting students")
	}
	data.Records = l.students.GetAttendanceForSubject(ctx, q.Get("subject"))
	return data, nil
}

func (l loaders) report(ctx context.Context, r *http.Request) (interface{}, error) {
	records := l.students.GetAttendanceForSubject(ctx, r.URL.Query().Get("subject"))
	return ReportData{Records: records, Summary: attendance.Summary(records)}, nil
}

func (l loaders) fetchSections(ctx context.Context) ([]map[string]interface{}, error) {
	body, err := l.sections.GetSections(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting sections")
	}
	var sections []map[string]interface{}
	if err = body.Decode(&sections); err != nil {
		return nil, errors.Wrap(err, "decoding sections")
	}
	return sections, nil
}

func (l loaders) sectionList(ctx context.Context, _ *http.Request) (interface{}, error) {
	sections, err := l.fetchSections(ctx)
	if err != nil {
		return nil, err
	}
	return SectionsData{Columns: sectionColumns(sections), Sections: sections}, nil
}

// sectionColumns lists the payload keys found across sections, "id" first, timestamps left out.
func sectionColumns(sections []map[string]interface{}) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, sec := range sections {
		for k := range sec {
			if seen[k] || k == "id" || k == "created_at" || k == "updated_at" {
				continue
			}
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return append([]string{"id"}, keys...)
}

func (l loaders) adminDashboard(ctx context.Context, r *http.Request) (interface{}, error) {
	students, err := l.students.GetData(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting students")
	}
	sections, err := l.fetchSections(ctx)
	if err != nil {
		return nil, err
	}
	records := l.students.GetAttendanceForSubject(ctx, r.URL.Query().Get("subject"))
	return AdminDashboardData{
		StudentCount: len(students),
		SectionCount: len(sections),
		Summary:      attendance.Summary(records),
	}, nil
}

func (l loaders) adminGraph(ctx context.Context, r *http.Request) (interface{}, error) {
	students, err := l.students.GetData(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting students")
	}

	counts := make(map[int]int)
	for _, s := range students {
		counts[s.GradeLevel]++
	}
	byGrade := make([]GradeCount, 0, len(counts))
	for lvl, n := range counts {
		byGrade = append(byGrade, GradeCount{GradeLevel: lvl, Count: n})
	}
	sort.Slice(byGrade, func(i, j int) bool { return byGrade[i].GradeLevel < byGrade[j].GradeLevel })

	records := l.students.GetAttendanceForSubject(ctx, r.URL.Query().Get("subject"))
	return GraphData{ByGrade: byGrade, Summary: attendance.Summary(records)}, nil
}

func (l loaders) adminStudents(ctx context.Context, _ *http.Request) (interface{}, error) {
	students, err := l.students.GetData(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting students")
	}
	return StudentsData{Students: students}, nil
}
