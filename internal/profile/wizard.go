package profile

import (
	"errors"
	"fmt"
	"strings"
)

// Trigger is the kind of input that drives the wizard.
type Trigger int

const (
	TriggerBeginSetup Trigger = iota
	TriggerPhoto
	TriggerText
	TriggerSkip
	TriggerCancel
	TriggerComplete
)

var triggerNames = [...]string{
	TriggerBeginSetup: "begin_setup",
	TriggerPhoto:      "photo",
	TriggerText:       "text",
	TriggerSkip:       "skip",
	TriggerCancel:     "cancel",
	TriggerComplete:   "complete",
}

func (t Trigger) String() string {
	if t >= 0 && int(t) < len(triggerNames) {
		return triggerNames[t]
	}
	return fmt.Sprintf("trigger(%d)", int(t))
}

// Event is one input for Transition. Payload holds the photo file id or the text.
type Event struct {
	Trigger Trigger
	Payload string
}

// Effect tells the caller which reply the accepted transition calls for.
type Effect int

const (
	EffectNone Effect = iota
	// EffectWizardStarted: show the wizard intro and the first step.
	EffectWizardStarted
	// EffectImageSaved: confirm the picture, then prompt the next step.
	EffectImageSaved
	// EffectAdvanced: prompt the new step.
	EffectAdvanced
	// EffectCompleted: show the completion summary.
	EffectCompleted
	// EffectCancelled: confirm cancellation and show the main menu.
	EffectCancelled
)

var effectNames = [...]string{
	EffectNone:          "none",
	EffectWizardStarted: "wizard_started",
	EffectImageSaved:    "image_saved",
	EffectAdvanced:      "advanced",
	EffectCompleted:     "completed",
	EffectCancelled:     "cancelled",
}

func (e Effect) String() string {
	if e >= 0 && int(e) < len(effectNames) {
		return effectNames[e]
	}
	return fmt.Sprintf("effect(%d)", int(e))
}

// Result is the outcome of an accepted transition.
type Result struct {
	Record Record
	From   Step
	Effect Effect
}

var (
	// ErrUnexpectedInput is returned when the input does not fit the current step.
	ErrUnexpectedInput = errors.New("profile: unexpected input for current step")
	// ErrCannotSkip is returned for a skip outside the collecting steps.
	ErrCannotSkip = errors.New("profile: step cannot be skipped")
	// ErrEmptyPayload is returned for a photo or text event without content.
	ErrEmptyPayload = errors.New("profile: empty payload")
)

// MissingFieldError rejects an explicit completion while a required field is absent.
type MissingFieldError struct {
	Field Field
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("profile: %s is required to complete the profile", e.Field)
}

// Code implements the handler summary error code lookup.
func (e *MissingFieldError) Code() string {
	return "missing_" + string(e.Field)
}

// Transition applies ev to rec and returns the new record. It never mutates
// its argument; on error the caller's record stays as it was.
//
// Skipping the certificates step marks the profile completed even though
// certificates are absent. Only TriggerComplete checks that every field is set.
func Transition(rec Record, ev Event) (Result, error) {
	from := rec.Step
	next := rec
	var effect Effect

	switch ev.Trigger {
	case TriggerBeginSetup:
		// profile_setup is transient: the intro is shown and the first step follows at once
		next.Completed = false
		next.Step = StepWaitingForImage
		effect = EffectWizardStarted

	case TriggerCancel:
		next.Step = StepStart
		effect = EffectCancelled

	case TriggerPhoto:
		if rec.Step != StepWaitingForImage {
			return Result{}, ErrUnexpectedInput
		}
		if strings.TrimSpace(ev.Payload) == "" {
			return Result{}, ErrEmptyPayload
		}
		next.ProfileImage = ev.Payload
		next.Step = StepWaitingForEducation
		effect = EffectImageSaved

	case TriggerText:
		// answers are stored as typed; blank ones are rejected
		text := ev.Payload
		blank := strings.TrimSpace(text) == ""
		switch rec.Step {
		case StepWaitingForEducation:
			if blank {
				return Result{}, ErrEmptyPayload
			}
			next.Education = text
			next.Step = StepWaitingForCertificates
			effect = EffectAdvanced
		case StepWaitingForCertificates:
			if blank {
				return Result{}, ErrEmptyPayload
			}
			next.Certificates = text
			next.Step = StepProfileComplete
			next.Completed = true
			effect = EffectCompleted
		default:
			return Result{}, ErrUnexpectedInput
		}

	case TriggerSkip:
		switch rec.Step {
		case StepWaitingForImage:
			next.Step = StepWaitingForEducation
			effect = EffectAdvanced
		case StepWaitingForEducation:
			next.Step = StepWaitingForCertificates
			effect = EffectAdvanced
		case StepWaitingForCertificates:
			next.Step = StepProfileComplete
			next.Completed = true
			effect = EffectCompleted
		default:
			return Result{}, ErrCannotSkip
		}

	case TriggerComplete:
		if field := rec.Missing(); field != "" {
			return Result{}, &MissingFieldError{Field: field}
		}
		next.Step = StepProfileComplete
		next.Completed = true
		effect = EffectCompleted

	default:
		return Result{}, fmt.Errorf("profile: unknown trigger %s", ev.Trigger)
	}

	return Result{Record: next, From: from, Effect: effect}, nil
}

// RejectReason is a short label for a transition error, used in logs and metrics.
func RejectReason(err error) string {
	var missing *MissingFieldError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnexpectedInput):
		return "unexpected_input"
	case errors.Is(err, ErrCannotSkip):
		return "cannot_skip"
	case errors.Is(err, ErrEmptyPayload):
		return "empty_payload"
	case errors.As(err, &missing):
		return "missing_" + string(missing.Field)
	}
	return "error"
}
