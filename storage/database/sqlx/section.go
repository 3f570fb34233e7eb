package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lamms/lamms/core"
	"github.com/lamms/lamms/core/section"
)

const sectionColumns = "id, data, created_at, updated_at"

type sectionRow struct {
	ID        int             `db:"id"`
	Data      section.Payload `db:"data"`
	CreatedAt null.Time       `db:"created_at"`
	UpdatedAt null.Time       `db:"updated_at"`
}

func (r sectionRow) section() section.Section {
	return section.Section{
		ID:        r.ID,
		Data:      r.Data,
		CreatedAt: r.CreatedAt.Time.UTC(),
		UpdatedAt: r.UpdatedAt.Time.UTC(),
	}
}

type sectionRepository struct {
	exec core.DBExecutor
}

var _ section.Repository = (*sectionRepository)(nil) // interface compliance check

func NewSectionRepository(exec core.DBExecutor) *sectionRepository {
	return &sectionRepository{exec: exec}
}

func (repo sectionRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return core.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo sectionRepository) CreateSection(ctx context.Context, sec section.Section) (section.Section, error) {
	q := "INSERT INTO sections (data, created_at, updated_at) VALUES (?, ?, ?) RETURNING " + sectionColumns

	var row sectionRow
	err := repo.exec.GetContext(ctx, &row, repo.exec.Rebind(q), sec.Data, nullTime(sec.CreatedAt), nullTime(sec.UpdatedAt))
	if err != nil {
		return section.Section{}, errors.Wrap(err, "inserting section")
	}
	return row.section(), nil
}

func (repo sectionRepository) QueryAllSections(ctx context.Context) ([]section.Section, error) {
	var rows []sectionRow
	if err := repo.exec.SelectContext(ctx, &rows, "SELECT "+sectionColumns+" FROM sections ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "selecting sections")
	}
	sections := make([]section.Section, 0, len(rows))
	for _, r := range rows {
		sections = append(sections, r.section())
	}
	return sections, nil
}

func (repo sectionRepository) GetSectionByID(ctx context.Context, id int) (section.Section, error) {
	var row sectionRow
	q := repo.exec.Rebind("SELECT " + sectionColumns + " FROM sections WHERE id = ?")
	if err := repo.exec.GetContext(ctx, &row, q, id); err != nil {
		return section.Section{}, repo.trapNoRowsErr(err, "selecting section")
	}
	return row.section(), nil
}

func (repo sectionRepository) UpdateSection(ctx context.Context, sec section.Section) (section.Section, error) {
	q := "UPDATE sections SET data = ?, updated_at = ? WHERE id = ? RETURNING " + sectionColumns

	var row sectionRow
	if err := repo.exec.GetContext(ctx, &row, repo.exec.Rebind(q), sec.Data, nullTime(sec.UpdatedAt), sec.ID); err != nil {
		return section.Section{}, repo.trapNoRowsErr(err, "updating section")
	}
	return row.section(), nil
}

func (repo sectionRepository) DeleteSectionByID(ctx context.Context, id int) error {
	res, err := repo.exec.ExecContext(ctx, repo.exec.Rebind("DELETE FROM sections WHERE id = ?"), id)
	if err != nil {
		return errors.Wrap(err, "deleting section")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrNotFound
	}
	return nil
}
