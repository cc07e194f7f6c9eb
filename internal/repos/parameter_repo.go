package repos

import (
	"shopapi/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ParameterRepo struct{ db *sqlx.DB }

func NewParameterRepo(db *sqlx.DB) *ParameterRepo { return &ParameterRepo{db: db} }

func (r *ParameterRepo) List() ([]domain.Parameter, error) {
	var out []domain.Parameter
	err := r.db.Select(&out, `SELECT id, name FROM parameters ORDER BY name`)
	return out, err
}

// ByName looks a parameter up by its stored canonical name.
func (r *ParameterRepo) ByName(name string) (domain.Parameter, error) {
	var p domain.Parameter
	err := r.db.Get(&p, `SELECT id, name FROM parameters WHERE name=?`, name)
	return p, err
}

func (r *ParameterRepo) Create(id, name string) error {
	_, err := r.db.Exec(`INSERT INTO parameters(id,name) VALUES(?,?)`, id, name)
	return err
}

func (r *ParameterRepo) Rename(id, name string) error {
	_, err := r.db.Exec(`UPDATE parameters SET name=? WHERE id=?`, name, id)
	return err
}
