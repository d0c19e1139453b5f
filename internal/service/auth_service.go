package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/escola-api/internal/dto"
	"github.com/noah-isme/escola-api/internal/models"
	appErrors "github.com/noah-isme/escola-api/pkg/errors"
	"github.com/noah-isme/escola-api/pkg/validation"
)

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
	// AutoRegister creates an account on first login for unknown emails.
	AutoRegister bool
	// HashCost overrides bcrypt.DefaultCost when positive.
	HashCost int
}

// AuthService provides login, self-registration and token validation.
type AuthService struct {
	uow       UnitOfWork
	summary   SummaryInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// account is the subset of a teacher or student needed to authenticate.
type account struct {
	id    int64
	nome  string
	email string
	hash  *string
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(uow UnitOfWork, summary SummaryInvalidator, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = dto.NewValidator()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 24 * time.Hour
	}
	if config.HashCost <= 0 {
		config.HashCost = bcrypt.DefaultCost
	}
	return &AuthService{uow: uow, summary: summary, validator: validate, logger: logger, config: config}
}

// Login authenticates against the table selected by req.Tipo. Unknown emails
// are provisioned only when AutoRegister is enabled.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Tipo = strings.ToLower(strings.TrimSpace(req.Tipo))
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Wrap(err, msgInvalidPayload)
	}
	role := models.UserRole(req.Tipo)

	var acct *account
	err := s.uow.Read(ctx, func(r Repos) error {
		found, err := s.findAccount(ctx, r, role, req.Email)
		acct = found
		return err
	})
	created := false
	switch {
	case err == nil:
	case !errors.Is(err, sql.ErrNoRows):
		return nil, internal(err, msgInternalFailure)
	case !s.config.AutoRegister:
		return nil, s.rejectLogin(req)
	default:
		acct, created, err = s.provision(ctx, role, req.Email, req.Senha)
		if err != nil {
			return nil, passThrough(err)
		}
	}

	if !created && !s.passwordMatches(acct, req.Senha) {
		return nil, s.rejectLogin(req)
	}

	token, _, err := s.generateAccessToken(role, acct)
	if err != nil {
		return nil, internal(err, "falha ao gerar token")
	}

	msg := fmt.Sprintf("Login realizado com sucesso como %s!", role.Label())
	if created {
		msg = fmt.Sprintf("%s cadastrado com sucesso e logado!", role.Label())
		invalidateSummary(ctx, s.summary)
		s.logger.Info("account provisioned on login", zap.String("tipo", req.Tipo), zap.Int64("id", acct.id))
	}

	return &models.LoginResponse{
		Msg:         msg,
		Tipo:        role,
		Nome:        acct.nome,
		AccessToken: token,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
	}, nil
}

// Register creates a student account with a hashed credential.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterStudentRequest) (*models.RegisterResponse, error) {
	req.Nome = strings.TrimSpace(req.Nome)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Wrap(err, msgInvalidPayload)
	}
	hash, err := s.hash(req.Senha)
	if err != nil {
		return nil, internal(err, msgInternalFailure)
	}
	student := &models.Student{
		Nome:      req.Nome,
		Email:     req.Email,
		Status:    models.StudentStatusActive,
		SenhaHash: &hash,
	}
	err = s.uow.Atomic(ctx, func(r Repos) error {
		exists, err := r.Students.ExistsByEmail(ctx, student.Email, 0)
		if err != nil {
			return internal(err, msgInternalFailure)
		}
		if exists {
			return conflict(msgEmailTaken)
		}
		if err := r.Students.Create(ctx, student); err != nil {
			return writeError(err, "", conflict(msgEmailTaken), nil)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}
	invalidateSummary(ctx, s.summary)
	s.logger.Info("student registered", zap.Int64("id_aluno", student.ID))
	return &models.RegisterResponse{Msg: "Cadastro realizado com sucesso!", StudentID: student.ID}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithIssuer(s.config.Issuer))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "token inválido")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token inválido")
	}
	return claims, nil
}

func (s *AuthService) findAccount(ctx context.Context, r Repos, role models.UserRole, email string) (*account, error) {
	if role == models.RoleTeacher {
		teacher, err := r.Teachers.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &account{id: teacher.ID, nome: teacher.Nome, email: teacher.Email, hash: teacher.SenhaHash}, nil
	}
	student, err := r.Students.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &account{id: student.ID, nome: student.Nome, email: student.Email, hash: student.SenhaHash}, nil
}

// provision hashes the password before opening the unit of work and creates
// the account unless a concurrent login already did.
func (s *AuthService) provision(ctx context.Context, role models.UserRole, email, password string) (*account, bool, error) {
	hash, err := s.hash(password)
	if err != nil {
		return nil, false, internal(err, msgInternalFailure)
	}
	nome := localPart(email)

	var (
		acct    *account
		created bool
	)
	err = s.uow.Atomic(ctx, func(r Repos) error {
		found, err := s.findAccount(ctx, r, role, email)
		switch {
		case err == nil:
			acct = found
			return nil
		case !errors.Is(err, sql.ErrNoRows):
			return internal(err, msgInternalFailure)
		}

		created = true
		if role == models.RoleTeacher {
			teacher := &models.Teacher{Nome: nome, Email: email, SenhaHash: &hash}
			if err := r.Teachers.Create(ctx, teacher); err != nil {
				return writeError(err, "", conflict(msgEmailTaken), nil)
			}
			acct = &account{id: teacher.ID, nome: teacher.Nome, email: teacher.Email, hash: teacher.SenhaHash}
			return nil
		}
		student := &models.Student{Nome: nome, Email: email, Status: models.StudentStatusActive, SenhaHash: &hash}
		if err := r.Students.Create(ctx, student); err != nil {
			return writeError(err, "", conflict(msgEmailTaken), nil)
		}
		acct = &account{id: student.ID, nome: student.Nome, email: student.Email, hash: student.SenhaHash}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return acct, created, nil
}

func (s *AuthService) rejectLogin(req dto.LoginRequest) error {
	s.logger.Warn("login rejected", zap.String("email", req.Email), zap.String("tipo", req.Tipo))
	return appErrors.Clone(appErrors.ErrInvalidCredentials, "")
}

func (s *AuthService) passwordMatches(acct *account, password string) bool {
	if acct == nil || acct.hash == nil || *acct.hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*acct.hash), []byte(password)) == nil
}

func (s *AuthService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.config.HashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *AuthService) generateAccessToken(role models.UserRole, acct *account) (string, time.Time, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.AccessTokenExpiry)
	claims := &models.JWTClaims{
		UserID: acct.id,
		Role:   role,
		Email:  acct.email,
		Nome:   acct.nome,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   fmt.Sprintf("%s:%d", role, acct.id),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
