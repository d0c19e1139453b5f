package models

// Teacher represents an instructor (professor) record.
type Teacher struct {
	ID             int64   `db:"id_professor" json:"id_professor"`
	Nome           string  `db:"nome" json:"nome"`
	Email          string  `db:"email" json:"email"`
	Especializacao *string `db:"especializacao" json:"especializacao"`
	SenhaHash      *string `db:"senha_hash" json:"-"`
}
