package model

import (
	"strings"
	"testing"

	"catalog-backend/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestAuthorRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid", "John Doe", false},
		{"empty", "", true},
		{"too long", strings.Repeat("x", 101), true},
		{"max length", strings.Repeat("x", 100), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorRequest{Name: tt.in}.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		})
	}
}

func TestAuthorRequestNormalize(t *testing.T) {
	req := AuthorRequest{Name: "  John Doe "}
	req.Normalize()
	assert.Equal(t, "John Doe", req.Name)

	blank := AuthorRequest{Name: "   "}
	blank.Normalize()
	assert.True(t, apperror.IsKind(blank.Validate(), apperror.KindValidation))

	name := " Jane "
	upd := UpdateAuthorRequest{Name: &name, Partial: true}
	upd.Normalize()
	assert.Equal(t, "Jane", *upd.Name)
}

func TestToResponseNeverNilBooks(t *testing.T) {
	a := &Author{Name: "Jane"}
	assert.NotNil(t, a.ToResponse(nil).Books)
}

func TestUpdateAuthorRequestValidate(t *testing.T) {
	name := "Jane Smith"
	blank := ""
	tests := []struct {
		name    string
		req     UpdateAuthorRequest
		wantErr bool
	}{
		{"put with name", UpdateAuthorRequest{Name: &name}, false},
		{"put without name", UpdateAuthorRequest{}, true},
		{"patch without name", UpdateAuthorRequest{Partial: true}, false},
		{"patch blank name", UpdateAuthorRequest{Name: &blank, Partial: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.True(t, apperror.IsKind(err, apperror.KindValidation))
				return
			}
			assert.NoError(t, err)
		})
	}
}
