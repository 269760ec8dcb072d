package planning

import (
	"fmt"

	"github.com/google/uuid"
)

// NewReportID generates a unique cycle report identifier
func NewReportID() string {
	return uuid.New().String()
}

// ValidateReportID checks that id is a well-formed report identifier
func ValidateReportID(id string) error {
	if id == "" {
		return fmt.Errorf("report id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid report id format: %w", err)
	}
	return nil
}
