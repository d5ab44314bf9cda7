package profile

import "fmt"

// Step is the position of a user in the profile wizard.
type Step int

const (
	StepStart Step = iota
	StepProfileSetup
	StepWaitingForImage
	StepWaitingForEducation
	StepWaitingForCertificates
	StepProfileComplete
)

var stepNames = [...]string{
	StepStart:                  "start",
	StepProfileSetup:           "profile_setup",
	StepWaitingForImage:        "waiting_for_image",
	StepWaitingForEducation:    "waiting_for_education",
	StepWaitingForCertificates: "waiting_for_certificates",
	StepProfileComplete:        "profile_complete",
}

func (s Step) String() string {
	if s >= 0 && int(s) < len(stepNames) {
		return stepNames[s]
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Collecting reports whether the wizard is waiting for user input at s.
func (s Step) Collecting() bool {
	switch s {
	case StepWaitingForImage, StepWaitingForEducation, StepWaitingForCertificates:
		return true
	}
	return false
}

// Number is the 1-based position of a collecting step, 0 otherwise.
func (s Step) Number() int {
	switch s {
	case StepWaitingForImage:
		return 1
	case StepWaitingForEducation:
		return 2
	case StepWaitingForCertificates:
		return 3
	}
	return 0
}

// TotalSteps is the number of collecting steps.
const TotalSteps = 3
