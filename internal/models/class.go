package models

// ClassStatusOpen is the status assigned to new class offerings.
const ClassStatusOpen = "inscrições abertas"

// Class is a concrete offering (turma) of a course taught by a teacher.
type Class struct {
	ID           int64   `db:"id_turma" json:"id_turma"`
	CourseID     int64   `db:"id_curso" json:"id_curso"`
	TeacherID    int64   `db:"id_professor" json:"id_professor"`
	CargaHoraria int     `db:"carga_horaria" json:"carga_horaria"`
	Horario      *string `db:"horario" json:"horario"`
	Sala         *string `db:"sala" json:"sala"`
	Status       string  `db:"status" json:"status"`
}

// ClassDetail embeds the course and teacher of a class.
type ClassDetail struct {
	Class
	Curso     Course  `db:"curso" json:"curso"`
	Professor Teacher `db:"professor" json:"professor"`
}
