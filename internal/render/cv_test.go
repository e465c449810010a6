package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-coach/internal/types"
)

func sampleCV() *types.CVDocument {
	return &types.CVDocument{
		PersonalInfo: types.PersonalInfo{
			Name:     "Jordan Reyes",
			Contact:  "jordan@example.com",
			Location: "Manchester, UK",
		},
		ProfessionalSummary: "Product leader with a track record of shipping.",
		Experience: []types.ExperienceEntry{
			{
				Role:         "Product Manager",
				Company:      "Acme Ltd",
				Duration:     "2020 - Present",
				Achievements: []string{"Launched two flagship products", "Grew revenue 30%"},
			},
		},
		Education: []types.EducationEntry{
			{Degree: "BA Economics", Institution: "University of Leeds", Year: "2016"},
		},
		Skills: []string{"Roadmapping", "Stakeholder Management"},
	}
}

func TestWriteCV(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteCV(sampleCV(), &sb))

	out := sb.String()
	assert.Contains(t, out, "# Jordan Reyes")
	assert.Contains(t, out, "jordan@example.com | Manchester, UK")
	assert.Contains(t, out, "**Product Manager** | *Acme Ltd (2020 - Present)*")
	assert.Contains(t, out, "- Launched two flagship products")
	assert.Contains(t, out, "- BA Economics, University of Leeds (2016)")
	assert.Contains(t, out, "Roadmapping · Stakeholder Management")
}

func TestWriteCV_Nil(t *testing.T) {
	var sb strings.Builder
	assert.Error(t, WriteCV(nil, &sb))
}

func TestWriteCVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.md")
	require.NoError(t, WriteCVFile(sampleCV(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Jordan Reyes")
}
