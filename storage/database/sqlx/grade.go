package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lamms/lamms/core"
	"github.com/lamms/lamms/core/grade"
)

const gradeColumns = "id, name, code, is_active, display_order, created_at, updated_at"

// likeEscaper makes LIKE patterns match `%`, `_` and `\` literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type gradeRow struct {
	ID           int         `db:"id"`
	Name         string      `db:"name"`
	Code         null.String `db:"code"`
	IsActive     bool        `db:"is_active"`
	DisplayOrder int         `db:"display_order"`
	CreatedAt    null.Time   `db:"created_at"`
	UpdatedAt    null.Time   `db:"updated_at"`
}

func (r gradeRow) grade() grade.Grade {
	return grade.Grade{
		ID:           r.ID,
		Name:         r.Name,
		Code:         r.Code,
		IsActive:     r.IsActive,
		DisplayOrder: r.DisplayOrder,
		CreatedAt:    r.CreatedAt.Time.UTC(),
		UpdatedAt:    r.UpdatedAt.Time.UTC(),
	}
}

func nullTime(t time.Time) null.Time {
	return null.NewTime(t.UTC(), !t.IsZero())
}

type gradeRepository struct {
	exec core.DBExecutor
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(exec core.DBExecutor) *gradeRepository {
	return &gradeRepository{exec: exec}
}

// trapErr maps "no rows" to core.ErrNotFound and unique violations to grade.ErrNameExists.
func (repo gradeRepository) trapErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return core.ErrNotFound
	}
	if isUniqueViolation(err) {
		return grade.ErrNameExists
	}
	return errors.Wrap(err, msg)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (repo gradeRepository) CheckNameUniqueness(ctx context.Context, name string, excludedGrades ...grade.Grade) error {
	q := "SELECT COUNT(*) FROM grades WHERE name = ?"
	args := []interface{}{name}
	if len(excludedGrades) > 0 {
		ids := make([]int, 0, len(excludedGrades))
		for _, g := range excludedGrades {
			ids = append(ids, g.ID)
		}
		q += " AND NOT (id = ANY(?))"
		args = append(args, pq.Array(ids))
	}

	var count int
	if err := repo.exec.GetContext(ctx, &count, repo.exec.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "counting grades by name")
	}
	if count > 0 {
		return grade.ErrNameExists
	}
	return nil
}

func (repo gradeRepository) CreateGrade(ctx context.Context, grd grade.Grade) (grade.Grade, error) {
	q := `INSERT INTO grades (name, code, is_active, display_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING ` + gradeColumns

	var row gradeRow
	err := repo.exec.GetContext(ctx, &row, repo.exec.Rebind(q),
		grd.Name, grd.Code, grd.IsActive, grd.DisplayOrder, nullTime(grd.CreatedAt), nullTime(grd.UpdatedAt))
	if err != nil {
		return grade.Grade{}, repo.trapErr(err, "inserting grade")
	}
	return row.grade(), nil
}

func (repo gradeRepository) FilterGrades(ctx context.Context, filter grade.QueryFilter, orderings ...core.DBOrdering) ([]grade.Grade, error) {
	var where []string
	var args []interface{}
	if filter.Search != "" {
		where = append(where, "(name ILIKE ? OR code ILIKE ?)")
		like := "%" + likeEscaper.Replace(filter.Search) + "%"
		args = append(args, like, like)
	}
	if filter.IsActive != nil {
		where = append(where, "is_active = ?")
		args = append(args, *filter.IsActive)
	}

	q := "SELECT " + gradeColumns + " FROM grades"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	if err := core.CheckOrderings(orderings, grade.OrderingFields); err != nil {
		return nil, err
	}
	if len(orderings) > 0 {
		clauses := make([]string, 0, len(orderings))
		for _, ord := range orderings {
			clauses = append(clauses, ord.String())
		}
		q += " ORDER BY " + strings.Join(clauses, ", ")
	}

	var rows []gradeRow
	if err := repo.exec.SelectContext(ctx, &rows, repo.exec.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "selecting grades")
	}
	grades := make([]grade.Grade, 0, len(rows))
	for _, r := range rows {
		grades = append(grades, r.grade())
	}
	return grades, nil
}

func (repo gradeRepository) GetGradeByID(ctx context.Context, id int) (grade.Grade, error) {
	var row gradeRow
	q := repo.exec.Rebind("SELECT " + gradeColumns + " FROM grades WHERE id = ?")
	if err := repo.exec.GetContext(ctx, &row, q, id); err != nil {
		return grade.Grade{}, repo.trapErr(err, "selecting grade")
	}
	return row.grade(), nil
}

func (repo gradeRepository) UpdateGrade(ctx context.Context, grd grade.Grade) (grade.Grade, error) {
	q := `UPDATE grades SET name = ?, code = ?, is_active = ?, display_order = ?, updated_at = ?
		WHERE id = ? RETURNING ` + gradeColumns

	var row gradeRow
	err := repo.exec.GetContext(ctx, &row, repo.exec.Rebind(q),
		grd.Name, grd.Code, grd.IsActive, grd.DisplayOrder, nullTime(grd.UpdatedAt), grd.ID)
	if err != nil {
		return grade.Grade{}, repo.trapErr(err, "updating grade")
	}
	return row.grade(), nil
}

func (repo gradeRepository) DeleteGradesByID(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	q := repo.exec.Rebind("DELETE FROM grades WHERE id = ANY(?)")
	if _, err := repo.exec.ExecContext(ctx, q, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting grades")
	}
	return nil
}
