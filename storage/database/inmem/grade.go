package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/lamms/lamms/core"
	"github.com/lamms/lamms/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) query() []grade.Grade {
	grades := make([]grade.Grade, 0, len(repo.db.table))
	for _, g := range repo.db.table {
		grades = append(grades, *g)
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].ID < grades[j].ID })
	return grades
}

func (repo *gradeRepository) checkNameUniqueness(name string, excludedGrades ...grade.Grade) error {
	excluded := make(map[int]bool, len(excludedGrades))
	for _, g := range excludedGrades {
		excluded[g.ID] = true
	}
	for _, g := range repo.db.table {
		if g.Name == name && !excluded[g.ID] {
			return grade.ErrNameExists
		}
	}
	return nil
}

func (repo *gradeRepository) CheckNameUniqueness(_ context.Context, name string, excludedGrades ...grade.Grade) error {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.checkNameUniqueness(name, excludedGrades...)
}

func (repo *gradeRepository) CreateGrade(_ context.Context, grd grade.Grade) (grade.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// the unique index of the real table
	if err := repo.checkNameUniqueness(grd.Name); err != nil {
		return grade.Grade{}, err
	}
	repo.db.pkCount++
	grd.ID = repo.db.pkCount
	repo.db.table[grd.ID] = &grd
	return grd, nil
}

func (repo *gradeRepository) FilterGrades(_ context.Context, filter grade.QueryFilter, orderings ...core.DBOrdering) ([]grade.Grade, error) {
	if err := core.CheckOrderings(orderings, grade.OrderingFields); err != nil {
		return nil, err
	}

	repo.db.RLock()
	defer repo.db.RUnlock()

	search := strings.ToLower(filter.Search)
	grades := make([]grade.Grade, 0, len(repo.db.table))
	for _, g := range repo.query() {
		if search != "" &&
			!strings.Contains(strings.ToLower(g.Name), search) &&
			!strings.Contains(strings.ToLower(g.Code.String), search) {
			continue
		}
		if filter.IsActive != nil && g.IsActive != *filter.IsActive {
			continue
		}
		grades = append(grades, g)
	}

	sort.SliceStable(grades, func(i, j int) bool {
		for _, ord := range orderings {
			if c := compareGrades(grades[i], grades[j], ord.Field); c != 0 {
				return (c < 0) == ord.Ascending
			}
		}
		return false
	})
	return grades, nil
}

// compareGrades returns -1, 0 or 1 comparing `a` and `b` on `field`.
func compareGrades(a, b grade.Grade, field string) int {
	switch field {
	case "id":
		return compareInts(a.ID, b.ID)
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "code":
		return strings.Compare(a.Code.String, b.Code.String)
	case "is_active":
		return compareBools(a.IsActive, b.IsActive)
	case "display_order":
		return compareInts(a.DisplayOrder, b.DisplayOrder)
	case "created_at":
		return compareInts64(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	case "updated_at":
		return compareInts64(a.UpdatedAt.UnixNano(), b.UpdatedAt.UnixNano())
	default:
		return 0
	}
}

func compareInts(a, b int) int { return compareInts64(int64(a), int64(b)) }

func compareInts64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// false < true, like postgres
func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func (repo *gradeRepository) GetGradeByID(_ context.Context, id int) (grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if grd, ok := repo.db.table[id]; ok {
		return *grd, nil
	}
	return grade.Grade{}, core.ErrNotFound
}

func (repo *gradeRepository) UpdateGrade(_ context.Context, grd grade.Grade) (grade.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origGrd, ok := repo.db.table[grd.ID]
	if !ok {
		return grade.Grade{}, core.ErrNotFound
	}
	if err := repo.checkNameUniqueness(grd.Name, *origGrd); err != nil {
		return grade.Grade{}, err
	}
	grd.CreatedAt = origGrd.CreatedAt
	repo.db.table[grd.ID] = &grd
	return grd, nil
}

func (repo *gradeRepository) DeleteGradesByID(_ context.Context, ids ...int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
