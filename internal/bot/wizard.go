package bot

import (
	"errors"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/hustlex/hustlexbot/core/logger"
	"github.com/hustlex/hustlexbot/core/metrics"
	tghelpers "github.com/hustlex/hustlexbot/core/telegram/helpers"
	"github.com/hustlex/hustlexbot/internal/profile"
)

// Wizard drives the profile wizard from Telegram updates.
type Wizard struct {
	store   *profile.Store
	metrics *metrics.Recorder
}

// NewWizard returns a Wizard over store. rec may be nil.
func NewWizard(store *profile.Store, rec *metrics.Recorder) *Wizard {
	return &Wizard{store: store, metrics: rec}
}

// InProgress reports whether userID is at a collecting step.
func (w *Wizard) InProgress(userID int64) bool {
	rec, ok := w.store.Snapshot(userID)
	return ok && rec.Step.Collecting()
}

// ManagerHandler feeds a photo or text message into the wizard.
func (w *Wizard) ManagerHandler(c tele.Context) error {
	if msg := c.Message(); msg != nil && msg.Photo != nil {
		return w.apply(c, profile.Event{Trigger: profile.TriggerPhoto, Payload: msg.Photo.FileID}, SurfaceReply)
	}
	text := c.Text()
	if strings.HasPrefix(text, "/") {
		// unknown commands are never stored as answers
		rec, _ := w.store.Snapshot(tghelpers.SenderID(c))
		return tghelpers.SendText(c, GuidanceFor(rec.Step))
	}
	return w.apply(c, profile.Event{Trigger: profile.TriggerText, Payload: text}, SurfaceReply)
}

// Begin starts or restarts the wizard.
func (w *Wizard) Begin(c tele.Context) error {
	return w.apply(c, profile.Event{Trigger: profile.TriggerBeginSetup}, SurfaceReply)
}

// Skip handles the skip button.
func (w *Wizard) Skip(c tele.Context) error {
	return w.apply(c, profile.Event{Trigger: profile.TriggerSkip}, SurfaceEdit)
}

// Cancel handles the cancel button.
func (w *Wizard) Cancel(c tele.Context) error {
	return w.apply(c, profile.Event{Trigger: profile.TriggerCancel}, SurfaceEdit)
}

// Complete handles the explicit completion button.
func (w *Wizard) Complete(c tele.Context) error {
	return w.apply(c, profile.Event{Trigger: profile.TriggerComplete}, SurfaceEdit)
}

func identityOf(c tele.Context) profile.Identity {
	u := c.Sender()
	if u == nil {
		return profile.Identity{}
	}
	return profile.Identity{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
	}
}

func (w *Wizard) apply(c tele.Context, ev profile.Event, surface Surface) error {
	ctx := tghelpers.BuildContext(c)
	id := identityOf(c)
	if id.UserID == 0 {
		return nil
	}

	res, err := w.store.Apply(id, ev)
	if err != nil {
		reason := profile.RejectReason(err)
		w.metrics.Rejection(res.From.String(), reason)
		logger.Info(ctx, "service.profiles", "wizard.reject",
			slog.String("step", res.From.String()),
			slog.String("trigger", ev.Trigger.String()),
			slog.String("reason", reason),
		)
		return w.reject(c, res.Record, err, surface)
	}

	w.metrics.Transition(res.From.String(), res.Record.Step.String(), ev.Trigger.String())
	logger.Info(ctx, "service.profiles", "wizard.transition",
		slog.String("from", res.From.String()),
		slog.String("to", res.Record.Step.String()),
		slog.String("trigger", ev.Trigger.String()),
		slog.String("effect", res.Effect.String()),
	)
	return w.render(c, res, surface)
}

func (w *Wizard) render(c tele.Context, res profile.Result, surface Surface) error {
	rec := res.Record
	switch res.Effect {
	case profile.EffectWizardStarted:
		if err := tghelpers.SendMD(c, RenderStep(profile.StepProfileSetup, recipientOf(rec))); err != nil {
			return err
		}
		return w.prompt(c, rec.Step, SurfaceReply)

	case profile.EffectImageSaved:
		if err := tghelpers.SendMD(c, RenderImageSaved()); err != nil {
			return err
		}
		return w.prompt(c, rec.Step, SurfaceReply)

	case profile.EffectAdvanced:
		return w.prompt(c, rec.Step, surface)

	case profile.EffectCompleted:
		if surface == SurfaceEdit {
			return Deliver(c, surface, RenderCompletion(rec, surface), nil)
		}
		return tghelpers.SendMD(c, RenderCompletion(rec, surface), MainMenu())

	case profile.EffectCancelled:
		return Deliver(c, surface, RenderCancelled(), MainMenu())
	}
	return nil
}

func (w *Wizard) prompt(c tele.Context, step profile.Step, surface Surface) error {
	text := RenderStep(step, Recipient{})
	if text == "" {
		return nil
	}
	return Deliver(c, surface, text, WizardKeyboard(step))
}

func (w *Wizard) reject(c tele.Context, rec profile.Record, err error, surface Surface) error {
	var missing *profile.MissingFieldError
	switch {
	case errors.Is(err, profile.ErrCannotSkip):
		return Deliver(c, surface, msgCannotSkip, nil)
	case errors.As(err, &missing):
		return Deliver(c, surface, MissingFieldMessage(missing.Field), nil)
	case errors.Is(err, profile.ErrUnexpectedInput), errors.Is(err, profile.ErrEmptyPayload):
		return tghelpers.SendText(c, GuidanceFor(rec.Step))
	}
	return err
}

// sessionRefresh copies the sender's identity into the session on every update.
func sessionRefresh(c tele.Context, rec *profile.Record) {
	rec.Refresh(identityOf(c))
}

// sessionSeed creates the record of a first-time sender.
func sessionSeed(c tele.Context) *profile.Record {
	return profile.NewRecord(identityOf(c))
}
