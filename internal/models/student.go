package models

// StudentStatusActive is the status assigned to new students.
const StudentStatusActive = "ativo"

// Student represents an aluno record.
type Student struct {
	ID        int64   `db:"id_aluno" json:"id_aluno"`
	Nome      string  `db:"nome" json:"nome"`
	Email     string  `db:"email" json:"email"`
	Status    string  `db:"status" json:"status"`
	SenhaHash *string `db:"senha_hash" json:"-"`
}
