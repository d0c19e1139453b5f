package models

// Course represents a curso offered by the school.
type Course struct {
	ID        int64   `db:"id_curso" json:"id_curso"`
	Nome      string  `db:"nome" json:"nome"`
	Descricao *string `db:"descricao" json:"descricao"`
}
