// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package validate_test

import (
	"testing"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type request struct {
	Email string `json:"email" validate:"required,email"`
	Size  string `json:"size" validate:"required,oneof=S M L"`
	Items []item `json:"items" validate:"required,min=1,max=2,dive"`
}

func TestStruct_Valid(t *testing.T) {
	err := validate.Struct(&request{Email: "a@example.com", Size: "M", Items: []item{{Code: "123456"}}})

	assert.NoError(t, err)
}

func TestStruct_ReportsJSONPaths(t *testing.T) {
	err := validate.Struct(&request{Email: "nope", Size: "XS", Items: []item{{Code: "12ab"}}})

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Equal(t, validate.Message, appErr.Message)

	paths := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "email")
	assert.Contains(t, paths, "size")
	assert.Contains(t, paths, "items[0].code")
}

func TestStruct_SliceBounds(t *testing.T) {
	err := validate.Struct(&request{Email: "a@example.com", Size: "S", Items: []item{{"111111"}, {"222222"}, {"333333"}}})

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "items", appErr.Fields[0].Path)
	assert.Equal(t, "items must contain at most 2 item(s)", appErr.Fields[0].Message)
}
