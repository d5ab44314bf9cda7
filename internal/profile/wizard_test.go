package profile

import (
	"errors"
	"testing"
)

func mustTransition(t *testing.T, rec Record, ev Event) Result {
	t.Helper()
	res, err := Transition(rec, ev)
	if err != nil {
		t.Fatalf("Transition(%s, %s): %v", rec.Step, ev.Trigger, err)
	}
	return res
}

func TestFullWizardScenario(t *testing.T) {
	rec := *NewRecord(Identity{UserID: 1, FirstName: "Abebe"})
	if rec.Step != StepStart {
		t.Fatalf("new record step = %s", rec.Step)
	}

	res := mustTransition(t, rec, Event{Trigger: TriggerBeginSetup})
	if res.Record.Step != StepWaitingForImage || res.Effect != EffectWizardStarted {
		t.Fatalf("begin setup: %+v", res)
	}

	res = mustTransition(t, res.Record, Event{Trigger: TriggerPhoto, Payload: "file-1"})
	if res.Record.Step != StepWaitingForEducation || res.Record.ProfileImage != "file-1" || res.Effect != EffectImageSaved {
		t.Fatalf("photo: %+v", res)
	}

	res = mustTransition(t, res.Record, Event{Trigger: TriggerText, Payload: "BSc CS"})
	if res.Record.Step != StepWaitingForCertificates || res.Record.Education != "BSc CS" {
		t.Fatalf("education: %+v", res)
	}

	res = mustTransition(t, res.Record, Event{Trigger: TriggerText, Payload: "AWS Cert"})
	if res.Record.Step != StepProfileComplete || res.Record.Certificates != "AWS Cert" || !res.Record.Completed {
		t.Fatalf("certificates: %+v", res)
	}
	if res.Effect != EffectCompleted || res.From != StepWaitingForCertificates {
		t.Fatalf("unexpected effect/from: %s %s", res.Effect, res.From)
	}
}

func TestPhotoOutsideImageStepIsRejected(t *testing.T) {
	for _, step := range []Step{StepStart, StepWaitingForEducation, StepWaitingForCertificates, StepProfileComplete} {
		rec := Record{Step: step, ProfileImage: "old"}
		_, err := Transition(rec, Event{Trigger: TriggerPhoto, Payload: "new"})
		if !errors.Is(err, ErrUnexpectedInput) {
			t.Fatalf("step %s: expected ErrUnexpectedInput, got %v", step, err)
		}
		if rec.ProfileImage != "old" || rec.Step != step {
			t.Fatalf("step %s: record mutated: %+v", step, rec)
		}
	}
}

func TestTextOutsideTextStepsIsRejected(t *testing.T) {
	for _, step := range []Step{StepStart, StepWaitingForImage, StepProfileComplete} {
		if _, err := Transition(Record{Step: step}, Event{Trigger: TriggerText, Payload: "hi"}); !errors.Is(err, ErrUnexpectedInput) {
			t.Fatalf("step %s: expected ErrUnexpectedInput, got %v", step, err)
		}
	}
}

func TestEmptyPayloadIsRejected(t *testing.T) {
	if _, err := Transition(Record{Step: StepWaitingForEducation}, Event{Trigger: TriggerText, Payload: "  "}); !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
	if _, err := Transition(Record{Step: StepWaitingForImage}, Event{Trigger: TriggerPhoto}); !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestSkipAdvancesWithoutData(t *testing.T) {
	res := mustTransition(t, Record{Step: StepWaitingForImage}, Event{Trigger: TriggerSkip})
	if res.Record.Step != StepWaitingForEducation || res.Record.ProfileImage != "" {
		t.Fatalf("skip image: %+v", res.Record)
	}
	res = mustTransition(t, res.Record, Event{Trigger: TriggerSkip})
	if res.Record.Step != StepWaitingForCertificates || res.Record.Education != "" {
		t.Fatalf("skip education: %+v", res.Record)
	}
}

func TestSkipCertificatesCompletesWithoutFields(t *testing.T) {
	res := mustTransition(t, Record{Step: StepWaitingForCertificates}, Event{Trigger: TriggerSkip})
	if !res.Record.Completed || res.Record.Step != StepProfileComplete {
		t.Fatalf("skip certificates: %+v", res.Record)
	}
	if res.Record.Certificates != "" || res.Effect != EffectCompleted {
		t.Fatalf("skip certificates must leave certificates absent: %+v", res)
	}
}

func TestSkipOutsideWizardFails(t *testing.T) {
	for _, step := range []Step{StepStart, StepProfileSetup, StepProfileComplete} {
		if _, err := Transition(Record{Step: step}, Event{Trigger: TriggerSkip}); !errors.Is(err, ErrCannotSkip) {
			t.Fatalf("step %s: expected ErrCannotSkip, got %v", step, err)
		}
	}
}

func TestCancelKeepsCollectedFields(t *testing.T) {
	rec := Record{Step: StepWaitingForEducation, ProfileImage: "file-1"}
	res := mustTransition(t, rec, Event{Trigger: TriggerCancel})
	if res.Record.Step != StepStart || res.Record.ProfileImage != "file-1" || res.Effect != EffectCancelled {
		t.Fatalf("cancel: %+v", res)
	}
}

func TestBeginSetupResetsCompleted(t *testing.T) {
	rec := Record{Step: StepProfileComplete, Completed: true, Education: "BSc"}
	res := mustTransition(t, rec, Event{Trigger: TriggerBeginSetup})
	if res.Record.Completed || res.Record.Step != StepWaitingForImage || res.Record.Education != "BSc" {
		t.Fatalf("begin setup: %+v", res.Record)
	}
}

func TestCompleteValidatesFieldsInOrder(t *testing.T) {
	cases := []struct {
		rec  Record
		want Field
	}{
		{Record{Education: "BSc", Certificates: "AWS"}, FieldProfileImage},
		{Record{ProfileImage: "f", Certificates: "AWS"}, FieldEducation},
		{Record{ProfileImage: "f", Education: "BSc"}, FieldCertificates},
	}
	for _, tc := range cases {
		_, err := Transition(tc.rec, Event{Trigger: TriggerComplete})
		var missing *MissingFieldError
		if !errors.As(err, &missing) || missing.Field != tc.want {
			t.Fatalf("expected missing %s, got %v", tc.want, err)
		}
		if RejectReason(err) != "missing_"+string(tc.want) {
			t.Fatalf("RejectReason = %s", RejectReason(err))
		}
	}
}

func TestCompleteImpliesAllFields(t *testing.T) {
	rec := Record{Step: StepStart, ProfileImage: "f", Education: "BSc", Certificates: "AWS"}
	res := mustTransition(t, rec, Event{Trigger: TriggerComplete})
	r := res.Record
	if !r.Completed || r.Step != StepProfileComplete {
		t.Fatalf("complete: %+v", r)
	}
	if r.ProfileImage == "" || r.Education == "" || r.Certificates == "" {
		t.Fatalf("completed record missing fields: %+v", r)
	}
}

func TestStepNames(t *testing.T) {
	if StepWaitingForCertificates.String() != "waiting_for_certificates" {
		t.Fatalf("String() = %s", StepWaitingForCertificates)
	}
	if got := Step(42).String(); got != "step(42)" {
		t.Fatalf("out of range String() = %s", got)
	}
}

func TestTextAnswersKeepTyping(t *testing.T) {
	raw := "  BSc Computer Science\n  AAU 2022  "
	res := mustTransition(t, Record{Step: StepWaitingForEducation}, Event{Trigger: TriggerText, Payload: raw})
	if res.Record.Education != raw {
		t.Fatalf("education = %q, want %q", res.Record.Education, raw)
	}
	res = mustTransition(t, res.Record, Event{Trigger: TriggerText, Payload: " AWS\n"})
	if res.Record.Certificates != " AWS\n" || !res.Record.Completed {
		t.Fatalf("certificates: %+v", res.Record)
	}
}
