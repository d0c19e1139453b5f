package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchPayload struct {
	Nome   Optional[*string] `json:"nome" validate:"omitempty,max=5"`
	Email  Optional[*string] `json:"email" validate:"omitempty,email"`
	Status Optional[*string] `json:"status"`
	Horas  Optional[*int]    `json:"carga_horaria" validate:"omitempty,gt=0"`
}

func TestOptionalTracksPresence(t *testing.T) {
	var p patchPayload
	require.NoError(t, json.Unmarshal([]byte(`{"nome":"Bo","status":null}`), &p))

	assert.True(t, p.Nome.Set)
	require.NotNil(t, p.Nome.Value)
	assert.Equal(t, "Bo", *p.Nome.Value)

	assert.True(t, p.Status.Set)
	assert.Nil(t, p.Status.Value)

	assert.False(t, p.Email.Set)
	assert.False(t, p.Horas.Set)
}

func TestOptionalValidation(t *testing.T) {
	v := NewValidator()

	var ok patchPayload
	require.NoError(t, json.Unmarshal([]byte(`{"nome":"Bo"}`), &ok))
	assert.NoError(t, v.Struct(ok))

	var bad patchPayload
	require.NoError(t, json.Unmarshal([]byte(`{"nome":"Bartholomew","email":"nope","carga_horaria":-1}`), &bad))
	err := v.Struct(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nome")
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "carga_horaria")
}

func TestSome(t *testing.T) {
	name := "Ana"
	o := Some(&name)
	assert.True(t, o.Set)
	assert.Equal(t, &name, o.ValidationValue())
}
