package models

// Enrollment links a student to a class (matrícula).
type Enrollment struct {
	ID        int64 `db:"id_matricula" json:"id_matricula"`
	StudentID int64 `db:"id_aluno" json:"id_aluno"`
	ClassID   int64 `db:"id_turma" json:"id_turma"`
}

// EnrollmentDetail embeds the student and the class detail.
type EnrollmentDetail struct {
	Enrollment
	Aluno Student     `db:"aluno" json:"aluno"`
	Turma ClassDetail `db:"turma" json:"turma"`
}
