package models

// Summary carries the entity totals shown on the home page.
type Summary struct {
	TotalStudents int `db:"total_alunos" json:"total_alunos"`
	TotalTeachers int `db:"total_professores" json:"total_professores"`
	TotalCourses  int `db:"total_cursos" json:"total_cursos"`
	TotalClasses  int `db:"total_turmas" json:"total_turmas"`
}
