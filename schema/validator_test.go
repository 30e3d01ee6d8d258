package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchema(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		doc     map[string]interface{}
		wantErr string
	}{
		{name: "empty document", doc: map[string]interface{}{}},
		{
			name: "string entry",
			doc:  map[string]interface{}{"hooks": map[string]interface{}{"pre-commit": "go test ./..."}},
		},
		{
			name: "table entry",
			doc: map[string]interface{}{"hooks": map[string]interface{}{
				"commit-msg": map[string]interface{}{"command": "lint \"$1\"", "description": "lint"},
			}},
		},
		{
			name:    "unknown hook",
			doc:     map[string]interface{}{"hooks": map[string]interface{}{"pre-comit": "x"}},
			wantErr: "/hooks",
		},
		{
			name:    "unknown top-level key",
			doc:     map[string]interface{}{"extra": true},
			wantErr: "schema validation failed",
		},
		{
			name:    "blank command",
			doc:     map[string]interface{}{"hooks": map[string]interface{}{"pre-push": "   "}},
			wantErr: "/hooks/pre-push",
		},
		{
			name: "table without command",
			doc: map[string]interface{}{"hooks": map[string]interface{}{
				"pre-push": map[string]interface{}{"description": "nothing"},
			}},
			wantErr: "/hooks/pre-push",
		},
		{
			name:    "number entry",
			doc:     map[string]interface{}{"hooks": map[string]interface{}{"pre-push": 3}},
			wantErr: "/hooks/pre-push",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.doc)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewValidatorFromBytesRejectsGarbage(t *testing.T) {
	_, err := NewValidatorFromBytes([]byte("{not json"))
	assert.Error(t, err)
}
