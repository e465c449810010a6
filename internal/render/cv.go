// Package render turns a generated CV document into a downloadable file.
// Rendering is fire-and-forget from the session controller's point of view:
// a render failure never rolls back the journey-stage advance.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/career-coach/internal/types"
)

// WriteCV renders the CV document as markdown to w.
func WriteCV(cv *types.CVDocument, w io.Writer) error {
	if cv == nil {
		return fmt.Errorf("nil CV document")
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", cv.PersonalInfo.Name)
	fmt.Fprintf(&sb, "%s | %s\n\n", cv.PersonalInfo.Contact, cv.PersonalInfo.Location)

	fmt.Fprintf(&sb, "## Professional Summary\n\n%s\n\n", cv.ProfessionalSummary)

	sb.WriteString("## Experience\n\n")
	for _, exp := range cv.Experience {
		fmt.Fprintf(&sb, "**%s** | *%s (%s)*\n\n", exp.Role, exp.Company, exp.Duration)
		for _, achievement := range exp.Achievements {
			fmt.Fprintf(&sb, "- %s\n", achievement)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Education\n\n")
	for _, edu := range cv.Education {
		fmt.Fprintf(&sb, "- %s, %s (%s)\n", edu.Degree, edu.Institution, edu.Year)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "## Skills\n\n%s\n", strings.Join(cv.Skills, " · "))

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write CV document: %w", err)
	}
	return nil
}

// WriteCVFile renders the CV document to a file at path.
func WriteCVFile(cv *types.CVDocument, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CV file %s: %w", path, err)
	}
	defer f.Close()
	return WriteCV(cv, f)
}
