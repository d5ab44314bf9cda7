package router

import (
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/hustlex/hustlexbot/core/telegram"
	tghelpers "github.com/hustlex/hustlexbot/core/telegram/helpers"
	"github.com/hustlex/hustlexbot/core/telegram/middleware"
	"github.com/hustlex/hustlexbot/core/telegram/ui"
)

// FSM is the conversation flow consulted for messages that are not commands.
type FSM interface {
	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}

// TextOptions controls fallback behaviour for text and photo updates.
type TextOptions struct {
	UnknownText  tele.HandlerFunc
	UnknownPhoto tele.HandlerFunc
}

// FallbackOptions adapts a FallbackProvider to TextOptions.
func FallbackOptions(p ui.FallbackProvider) TextOptions {
	if p == nil {
		return TextOptions{}
	}
	return TextOptions{UnknownText: p.UnknownText(), UnknownPhoto: p.UnknownPhoto()}
}

// TextRoutes builds the text and photo handlers. Text is matched against
// registry commands and aliases first, so menu buttons work in the middle of
// a flow; anything else goes to the FSM while it is in progress.
func TextRoutes(fsm FSM, reg *tg.Registry, opts TextOptions) []tg.Route {
	textHandler := func(c tele.Context) error {
		start := time.Now()

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(c.Text()); ok && cmd.Handler != nil && !cmd.AdminOnly {
				return handleWithSummary(c, normalizeHandlerName(key), start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if fsm != nil && fsm.InProgress(tghelpers.SenderID(c)) {
			return handleWithSummary(c, "fsm", start, "", "", func() error {
				return fsm.ManagerHandler(c)
			})
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	photoHandler := func(c tele.Context) error {
		start := time.Now()
		if fsm != nil && fsm.InProgress(tghelpers.SenderID(c)) {
			return handleWithSummary(c, "fsm_photo", start, "", "", func() error {
				return fsm.ManagerHandler(c)
			})
		}
		if opts.UnknownPhoto != nil {
			return handleWithSummary(c, "unexpected_photo", start, "", "", func() error {
				return opts.UnknownPhoto(c)
			})
		}
		logHandlerSummary(c, "unexpected_photo", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(textHandler)),
		},
		{
			Endpoint: tele.OnPhoto,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(photoHandler)),
		},
	}
}
