package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/escola-api/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Env: "test",
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			SQLitePath:  ":memory:",
			AutoMigrate: true,
		},
		JWT:     config.JWTConfig{Secret: "secret", Expiration: time.Hour, Issuer: "escola-test"},
		Auth:    config.AuthConfig{AutoRegister: true},
		Summary: config.SummaryConfig{CacheTTL: time.Minute},
		Paging:  config.PagingConfig{DefaultLimit: 100, MaxLimit: 1000},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := New(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest), rec.Body.String())
}

func TestRouterEnrollmentFlow(t *testing.T) {
	app := newTestApp(t)
	r := app.Router

	rec := do(t, r, http.MethodPost, "/cursos/", `{"nome":"Math"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, r, http.MethodPost, "/professores", `{"nome":"Ana","email":"ana@x.io"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, r, http.MethodPost, "/turmas/", `{"id_curso":1,"id_professor":1,"carga_horaria":40}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var class map[string]interface{}
	decode(t, rec, &class)
	assert.Equal(t, float64(1), class["id_turma"])
	assert.Equal(t, "Math", class["curso"].(map[string]interface{})["nome"])

	rec = do(t, r, http.MethodPost, "/alunos/", `{"nome":"Bo","email":"bo@x.io"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, r, http.MethodPost, "/matriculas/", `{"id_aluno":1,"id_turma":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/turmas/1/alunos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var roster []map[string]interface{}
	decode(t, rec, &roster)
	require.Len(t, roster, 1)
	assert.Equal(t, float64(1), roster[0]["id_aluno"])
	assert.Equal(t, "Bo", roster[0]["nome"])
	assert.Equal(t, "ativo", roster[0]["status"])

	rec = do(t, r, http.MethodPost, "/matriculas/", `{"id_aluno":1,"id_turma":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var apiErr map[string]interface{}
	decode(t, rec, &apiErr)
	assert.Equal(t, "CONFLICT", apiErr["code"])
	assert.Equal(t, "Aluno já matriculado nesta turma", apiErr["detail"])

	rec = do(t, r, http.MethodGet, "/alunos/1/turmas", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var classes []map[string]interface{}
	decode(t, rec, &classes)
	assert.Len(t, classes, 1)

	rec = do(t, r, http.MethodGet, "/turmas/1/alunos/export?format=csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "turma_1_alunos.csv")
	assert.Equal(t, "id_aluno,nome,email,status\n1,Bo,bo@x.io,ativo\n", rec.Body.String())

	rec = do(t, r, http.MethodGet, "/home", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary map[string]int
	decode(t, rec, &summary)
	assert.Equal(t, map[string]int{"total_alunos": 1, "total_professores": 1, "total_cursos": 1, "total_turmas": 1}, summary)

	// teacher still owns the class
	rec = do(t, r, http.MethodDelete, "/professores/1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodDelete, "/cursos/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/turmas/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, r, http.MethodGet, "/matriculas/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-Total-Count"))
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, r, http.MethodDelete, "/professores/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouterPartialUpdateAndPaging(t *testing.T) {
	app := newTestApp(t)
	r := app.Router

	for _, body := range []string{
		`{"nome":"Bo","email":"bo@x.io","status":"trancado"}`,
		`{"nome":"Cy","email":"cy@x.io"}`,
		`{"nome":"Di","email":"di@x.io"}`,
	} {
		rec := do(t, r, http.MethodPost, "/alunos/", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(t, r, http.MethodGet, "/alunos/?skip=1&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("X-Total-Count"))
	var page []map[string]interface{}
	decode(t, rec, &page)
	require.Len(t, page, 1)
	assert.Equal(t, "Cy", page[0]["nome"])

	rec = do(t, r, http.MethodGet, "/alunos/?skip=0&limit=0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("X-Total-Count"))
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/alunos/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &page)
	assert.Len(t, page, 3)

	rec = do(t, r, http.MethodGet, "/alunos/?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPut, "/alunos/1", `{"nome":"Bob"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var student map[string]interface{}
	decode(t, rec, &student)
	assert.Equal(t, "Bob", student["nome"])
	assert.Equal(t, "bo@x.io", student["email"])
	assert.Equal(t, "trancado", student["status"])

	rec = do(t, r, http.MethodPut, "/alunos/1", `{"email":"cy@x.io"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPost, "/alunos/", `{"nome":"Ed","email":"bo@x.io"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodGet, "/alunos/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, r, http.MethodGet, "/alunos/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterLoginAndMe(t *testing.T) {
	app := newTestApp(t)
	r := app.Router

	form := url.Values{"email": {"novo@x.io"}, "senha": {"primeira"}, "tipo": {"ALUNO"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login map[string]interface{}
	decode(t, rec, &login)
	assert.Equal(t, "Aluno cadastrado com sucesso e logado!", login["msg"])
	token, _ := login["access_token"].(string)
	require.NotEmpty(t, token)

	rec = do(t, r, http.MethodPost, "/login", `{"email":"novo@x.io","senha":"outra","tipo":"aluno"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var me map[string]interface{}
	decode(t, rec, &me)
	assert.Equal(t, "novo@x.io", me["email"])
	assert.Equal(t, "aluno", me["role"])

	rec = do(t, r, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, r, http.MethodPost, "/register/aluno", `{"nome":"Di","email":"di@x.io","senha":"segredo"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	form = url.Values{"email": {"longa@x.io"}, "senha": {strings.Repeat("s", 80)}, "tipo": {"aluno"}}
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestRouterOperationalEndpoints(t *testing.T) {
	app := newTestApp(t)
	r := app.Router

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/ready", "").Code)

	do(t, r, http.MethodGet, "/cursos", "")
	rec := do(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `escola_http_requests_total{method="GET",route="/cursos",status="200"} 1`)

	rec = do(t, r, http.MethodGet, "/metrics/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "requests_total")
}
