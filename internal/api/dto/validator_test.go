package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Abcdef1!", true},
		{"Abcdefgh@", true},
		{"ABCDEFG#", true},
		{"Abcde1!", false},           // too short
		{"Abcdefghijklmno1!", false}, // too long
		{"abcdefg1!", false},         // no uppercase
		{"Abcdefg12", false},         // no symbol
		{"Abcdefg1?", false},         // symbol outside the set
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidPassword(tt.password), "password %q", tt.password)
	}
}

func TestRegisterValidators_BindingTags(t *testing.T) {
	RegisterValidators()
	RegisterValidators()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	ok1 := CreateUserRequest{
		Name:     "Administrator Example Name",
		Email:    "a@example.com",
		Password: "Secret12!",
		Role:     "store",
	}
	assert.NoError(t, v.Struct(ok1))

	bad := ok1
	bad.Role = "root"
	bad.Password = "weak"
	err := v.Struct(bad)
	require.Error(t, err)

	fields := map[string]string{}
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	assert.Equal(t, "role", fields["role"])
	assert.Equal(t, "password", fields["password"])
}

func TestUpdateUserRequest_NilFieldsSkipped(t *testing.T) {
	RegisterValidators()
	v := binding.Validator.Engine().(*validator.Validate)

	assert.NoError(t, v.Struct(UpdateUserRequest{}))

	short := "too short"
	assert.Error(t, v.Struct(UpdateUserRequest{Name: &short}))
}
