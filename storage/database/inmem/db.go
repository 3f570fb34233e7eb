package inmemdb

import (
	"sync"

	"github.com/lamms/lamms/core/grade"
	"github.com/lamms/lamms/core/section"
)

type (
	DB struct {
		grade   *gradeTable
		section *sectionTable
	}

	gradeTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*grade.Grade
	}

	sectionTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*section.Section
	}
)

func Open() *DB {
	return &DB{
		grade:   &gradeTable{table: make(map[int]*grade.Grade)},
		section: &sectionTable{table: make(map[int]*section.Section)},
	}
}
