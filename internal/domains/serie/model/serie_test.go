package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	artistModel "xpose-backend/internal/domains/artist/model"
)

func TestPatchOverwritesAllowlist(t *testing.T) {
	existing := Serie{
		ID: 3, Name: "Nocturnes", Description: "old", Active: true,
		Artists: []artistModel.Artist{{ID: 1}, {ID: 2}},
	}
	in := Serie{ID: 99, Name: "Nocturnos", Description: "new", Active: false, Artists: []artistModel.Artist{{ID: 7}}}

	merged := Patch(existing, in)

	assert.Equal(t, int64(3), merged.ID)
	assert.Equal(t, "Nocturnos", merged.Name)
	assert.Equal(t, "new", merged.Description)
	assert.False(t, merged.Active)
	assert.Equal(t, []int64{7}, artistModel.IDs(merged.Artists))
}

func TestValidateRequiresNameAndDescription(t *testing.T) {
	tests := []struct {
		name    string
		serie   Serie
		wantErr bool
	}{
		{"complete", Serie{Name: "a", Description: "b"}, false},
		{"no name", Serie{Description: "b"}, true},
		{"no description", Serie{Name: "a"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.serie.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
