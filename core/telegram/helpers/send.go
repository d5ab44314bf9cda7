package helpers

import (
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"

	"github.com/hustlex/hustlexbot/core/logger"
	"github.com/hustlex/hustlexbot/core/telegram/sender"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by helper functions.
// A nil dispatcher makes every helper send synchronously.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

func sendAsync(c tele.Context, action, endpoint string, run func() error) error {
	disp := globalDispatcher.Load()
	if disp == nil {
		return run()
	}

	ctx := BuildContext(c)
	if err := disp.Enqueue(ctx, ChatID(c), action, endpoint, run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			logger.Warn(ctx, "tg.sender", "queue.fallback",
				slog.String("action", action),
				slog.String("endpoint", endpoint),
				slog.String("err", err.Error()),
			)
			return run()
		}
		return err
	}
	return nil
}

func firstMarkup(markup []*tele.ReplyMarkup) *tele.ReplyMarkup {
	if len(markup) > 0 {
		return markup[0]
	}
	return nil
}

// SendText sends raw text (no parse mode) to the current recipient.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	var sendOpts *tele.SendOptions
	if len(opts) > 0 {
		sendOpts = opts[0]
	}
	return sendAsync(c, "send.text", "sendMessage", func() error {
		if sendOpts != nil {
			return c.Send(text, sendOpts)
		}
		return c.Send(text)
	})
}

// SendMD sends a message with Markdown parse mode and optional reply markup.
// Text Telegram cannot parse is resent without a parse mode.
func SendMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	rm := firstMarkup(markup)
	return sendAsync(c, "send.md", "sendMessage", func() error {
		return sendMarkdown(c, text, rm)
	})
}

// IsParseError reports whether Telegram rejected a message because its
// markup could not be parsed.
func IsParseError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "can't parse entities")
}

func sendMarkdown(c tele.Context, text string, rm *tele.ReplyMarkup) error {
	err := c.Send(text, &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: rm})
	if !IsParseError(err) {
		return err
	}
	logger.Warn(BuildContext(c), "tg.sender", "markdown.fallback",
		slog.String("err", sanitizeErr(err)),
	)
	return c.Send(text, &tele.SendOptions{ReplyMarkup: rm})
}

// EditMD edits the message behind the callback with Markdown parse mode.
// Edits run inline: the callback spinner is answered right after.
func EditMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return c.Edit(text, &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: firstMarkup(markup)})
}

// SendPhotoMD sends a photo by file id with a Markdown caption. When the photo
// cannot be delivered the caption is sent as a text message instead.
func SendPhotoMD(c tele.Context, fileID, caption string, markup ...*tele.ReplyMarkup) error {
	rm := firstMarkup(markup)
	return sendAsync(c, "send.photo", "sendPhoto", func() error {
		photo := &tele.Photo{File: tele.File{FileID: fileID}, Caption: caption}
		err := c.Send(photo, &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: rm})
		if err == nil {
			return nil
		}
		logger.Warn(BuildContext(c), "tg.sender", "photo.fallback",
			slog.String("err", sanitizeErr(err)),
		)
		return sendMarkdown(c, caption, rm)
	})
}

func sanitizeErr(err error) string {
	return logger.SanitizeLimit(err.Error(), 200)
}
