package attendance

import "context"

// Attendance statuses
const (
	StatusPresent = "Present"
	StatusLate    = "Late"
	StatusAbsent  = "Absent"
	StatusExcused = "Excused"
)

// Student is a fixture student. Its ID is numeric, unlike AttendanceRecord.StudentID.
type Student struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	TimeIn     string `json:"timeIn"`
	TimeOut    string `json:"timeOut"`
	Gender     string `json:"gender"`
	GradeLevel int    `json:"gradeLevel"`
	Section    string `json:"section"`
	Photo      string `json:"photo,omitempty"`
}

// AttendanceRecord is one attendance entry. StudentID is a string and is not linked to Student.ID.
type AttendanceRecord struct {
	Date        string `json:"date"`
	StudentName string `json:"studentName"`
	StudentID   string `json:"studentId"`
	Status      string `json:"status"`
	Time        string `json:"time"`
	Remarks     string `json:"remarks"`
}

// Photo is a gallery picture. Students only use ItemImageSrc.
type Photo struct {
	ItemImageSrc      string `json:"itemImageSrc"`
	ThumbnailImageSrc string `json:"thumbnailImageSrc,omitempty"`
	Alt               string `json:"alt,omitempty"`
	Title             string `json:"title,omitempty"`
}

// PhotoProvider supplies student pictures, consumed positionally.
type PhotoProvider interface {
	GetData(ctx context.Context) ([]Photo, error)
}
