package attendance

import (
	"context"

	"github.com/pkg/errors"
)

// Provider serves hard-coded students and attendance records.
// Nothing is persisted: every call rebuilds its data, so writes are echoed back and forgotten.
type Provider struct {
	photos PhotoProvider
}

func NewProvider(photos PhotoProvider) *Provider {
	return &Provider{photos: photos}
}

type studentFixture struct {
	id         int
	name       string
	timeIn     string
	timeOut    string
	gender     string
	gradeLevel int
	section    string
}

const fixtureDate = "2025-03-19"

var studentFixtures = [...]studentFixture{
	{1001, "Maria Clara Santos", "07:20 AM", "04:25 PM", "Female", 3, "A"},
	{1002, "Jose Andres Reyes", "07:10 AM", "04:35 PM", "Male", 4, "B"},
	{1003, "Rizalina Bautista", "07:25 AM", "04:40 PM", "Female", 5, "C"},
	{1004, "Emilio Aguinaldo Cruz", "07:05 AM", "04:20 PM", "Male", 6, "D"},
	{1005, "Gabriela Silang Rivera", "07:18 AM", "04:45 PM", "Female", 2, "E"},
	{1006, "Diego Silang Mendoza", "07:22 AM", "04:38 PM", "Male", 3, "A"},
	{1007, "Melchora Aquino Pascual", "07:08 AM", "04:28 PM", "Female", 4, "B"},
	{1008, "Andres Bonifacio Torres", "07:12 AM", "04:50 PM", "Male", 5, "C"},
	{1009, "Antonio Luna Gomez", "07:30 AM", "04:15 PM", "Male", 6, "D"},
	{1010, "Juan Dela Cruz", "07:15 AM", "04:30 PM", "Male", 2, "E"},
}

// GetData returns the ten fixture students in order.
// The i-th student gets the i-th photo; students past the end of the photo list get none.
func (p *Provider) GetData(ctx context.Context) ([]Student, error) {
	var photos []Photo
	if p.photos != nil {
		var err error
		if photos, err = p.photos.GetData(ctx); err != nil {
			return nil, errors.Wrap(err, "getting photos")
		}
	}

	students := make([]Student, 0, len(studentFixtures))
	for i, f := range studentFixtures {
		s := Student{
			ID:         f.id,
			Name:       f.name,
			Date:       fixtureDate,
			TimeIn:     f.timeIn,
			TimeOut:    f.timeOut,
			Gender:     f.gender,
			GradeLevel: f.gradeLevel,
			Section:    f.section,
		}
		if i < len(photos) {
			s.Photo = photos[i].ItemImageSrc
		}
		students = append(students, s)
	}
	return students, nil
}

func (p *Provider) filter(ctx context.Context, keep func(Student) bool) ([]Student, error) {
	students, err := p.GetData(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]Student, 0, len(students))
	for _, s := range students {
		if keep(s) {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

// GetStudentsByGrade keeps students whose grade level equals parseInt(gradeLevel).
func (p *Provider) GetStudentsByGrade(ctx context.Context, gradeLevel string) ([]Student, error) {
	grade, ok := parseInt(gradeLevel)
	return p.filter(ctx, func(s Student) bool { return ok && s.GradeLevel == grade })
}

// GetStudentsBySection keeps students whose section is exactly `section`.
func (p *Provider) GetStudentsBySection(ctx context.Context, section string) ([]Student, error) {
	return p.filter(ctx, func(s Student) bool { return s.Section == section })
}

func (p *Provider) GetStudentsByGradeAndSection(ctx context.Context, gradeLevel, section string) ([]Student, error) {
	grade, ok := parseInt(gradeLevel)
	return p.filter(ctx, func(s Student) bool { return ok && s.GradeLevel == grade && s.Section == section })
}

// AddStudent echoes `s`. It is not stored.
func (p *Provider) AddStudent(_ context.Context, s Student) (Student, error) {
	return s, nil
}

// RecordAttendance echoes `rec` tagged with `studentID`, unless rec already names a student. It is not stored.
func (p *Provider) RecordAttendance(_ context.Context, studentID string, rec AttendanceRecord) (AttendanceRecord, error) {
	if rec.StudentID == "" {
		rec.StudentID = studentID
	}
	return rec, nil
}

// GetAttendanceForSubject returns the sample attendance history. The subject is not used.
func (p *Provider) GetAttendanceForSubject(_ context.Context, _ string) []AttendanceRecord {
	return []AttendanceRecord{
		{
			Date:        "2023-09-15",
			StudentName: "Maria Clara Santos",
			StudentID:   "1001",
			Status:      StatusPresent,
			Time:        "10:30:45 AM",
			Remarks:     "",
		},
		{
			Date:        "2023-09-15",
			StudentName: "Juan Dela Cruz",
			StudentID:   "1002",
			Status:      StatusLate,
			Time:        "10:45:12 AM",
			Remarks:     "Traffic",
		},
	}
}

// GetStudentByID scans the fixture students for parseInt(id). ok is false when none matches.
func (p *Provider) GetStudentByID(ctx context.Context, id string) (Student, bool, error) {
	sid, valid := parseInt(id)
	students, err := p.GetData(ctx)
	if err != nil || !valid {
		return Student{}, false, err
	}
	for _, s := range students {
		if s.ID == sid {
			return s, true, nil
		}
	}
	return Student{}, false, nil
}
