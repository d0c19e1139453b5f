package dto

// LoginRequest holds the credentials posted to /login as form fields or JSON.
type LoginRequest struct {
	Email string `form:"email" json:"email" validate:"required,email"`
	Senha string `form:"senha" json:"senha" validate:"required,max=72"`
	Tipo  string `form:"tipo" json:"tipo" validate:"required,oneof=aluno professor"`
}

// RegisterStudentRequest is the self-registration payload for students.
type RegisterStudentRequest struct {
	Nome  string `form:"nome" json:"nome" validate:"required,max=255"`
	Email string `form:"email" json:"email" validate:"required,email,max=255"`
	Senha string `form:"senha" json:"senha" validate:"required,min=6,max=72"`
}
