package bot

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/hustlex/hustlexbot/core/logger"
	tghelpers "github.com/hustlex/hustlexbot/core/telegram/helpers"
	"github.com/hustlex/hustlexbot/internal/jobs"
	"github.com/hustlex/hustlexbot/internal/profile"
)

// Handlers serves the commands and menu buttons.
type Handlers struct {
	store  *profile.Store
	wizard *Wizard
	jobs   *jobs.Service

	platform     string
	website      string
	supportEmail string
}

func (h *Handlers) record(c tele.Context) profile.Record {
	id := identityOf(c)
	h.store.GetOrCreate(id)
	rec, _ := h.store.Snapshot(id.UserID)
	return rec
}

// Start creates the session and shows the main menu.
func (h *Handlers) Start(c tele.Context) error {
	rec := h.record(c)
	return tghelpers.SendMD(c, RenderWelcome(rec.UserID, recipientOf(rec)), MainMenu())
}

// Help lists the commands.
func (h *Handlers) Help(c tele.Context) error {
	return tghelpers.SendMD(c, RenderHelp())
}

// Setup starts the profile wizard.
func (h *Handlers) Setup(c tele.Context) error {
	return h.wizard.Begin(c)
}

// Profile shows the profile card, with the picture when one was stored.
func (h *Handlers) Profile(c tele.Context) error {
	rec := h.record(c)
	if !rec.Completed {
		return tghelpers.SendMD(c, msgNotCompleted, CompleteKeyboard())
	}
	card := RenderProfileCard(rec)
	if rec.HasImage() {
		return tghelpers.SendPhotoMD(c, rec.ProfileImage, card)
	}
	return tghelpers.SendMD(c, card)
}

// About describes the platform.
func (h *Handlers) About(c tele.Context) error {
	return tghelpers.SendMD(c, RenderAbout(h.platform, h.website, h.supportEmail))
}

// Jobs lists sectors and the latest postings. A failed read still sends the
// static listing.
func (h *Handlers) Jobs(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	latest, err := h.jobs.Latest(ctx)
	if err != nil {
		latest = nil
	}
	logger.Debug(ctx, "service.jobs", "jobs.render",
		slog.Int("jobs", len(latest)),
		slog.Bool("db", h.jobs.Enabled()),
	)
	return tghelpers.SendMD(c, RenderJobs(latest, h.website), JobsKeyboard(h.website))
}

// Stats reports session counts to the operator.
func (h *Handlers) Stats(c tele.Context) error {
	return tghelpers.SendMD(c, RenderStats(h.store.Stats()))
}

// Fallbacks answers updates no route claimed.
type Fallbacks struct{}

func (Fallbacks) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error { return tghelpers.SendText(c, msgUnknownText) }
}

func (Fallbacks) UnknownPhoto() tele.HandlerFunc {
	return func(c tele.Context) error { return tghelpers.SendText(c, msgUnknownPhoto) }
}

func (Fallbacks) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: msgUnknownCallback})
	}
}
