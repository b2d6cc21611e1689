package services

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedAssessmentName = errors.New("malformed assessment name")

func ProjectPath(projectID string) string {
	return "projects/" + projectID
}

func AssessmentPath(projectID, assessmentID string) string {
	return "projects/" + projectID + "/assessments/" + assessmentID
}

// ParseAssessmentPath splits "projects/{project}/assessments/{assessment}".
func ParseAssessmentPath(name string) (string, string, error) {
	parts := strings.Split(name, "/")
	if len(parts) != 4 || parts[0] != "projects" || parts[2] != "assessments" || parts[1] == "" || parts[3] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedAssessmentName, name)
	}
	return parts[1], parts[3], nil
}
