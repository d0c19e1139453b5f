package models

import (
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UserRole distinguishes which table an account lives in.
type UserRole string

const (
	RoleStudent UserRole = "aluno"
	RoleTeacher UserRole = "professor"
)

// Label returns the capitalised role name used in user facing messages.
func (r UserRole) Label() string {
	return cases.Title(language.BrazilianPortuguese).String(string(r))
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID int64    `json:"user_id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	Nome   string   `json:"nome"`
	jwt.RegisteredClaims
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Msg         string   `json:"msg"`
	Tipo        UserRole `json:"tipo"`
	Nome        string   `json:"nome"`
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"`
}

// RegisterResponse is returned after a student self-registers.
type RegisterResponse struct {
	Msg       string `json:"msg"`
	StudentID int64  `json:"id_aluno"`
}
