package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchemas_ValidJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"candidate", Candidate},
		{"client", Client},
		{"history_item", HistoryItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotEmpty(t, tt.raw)

			var doc map[string]any
			require.NoError(t, json.Unmarshal(tt.raw, &doc))
			assert.Equal(t, "object", doc["type"])
			assert.NotEmpty(t, doc["required"])
			assert.NotEmpty(t, doc["properties"])
		})
	}
}

func TestCandidateSchema_RequiredFields(t *testing.T) {
	var doc struct {
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(Candidate, &doc))
	assert.ElementsMatch(t, []string{"name", "contact", "careerAspirations"}, doc.Required)
}
