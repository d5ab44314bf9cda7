package router

import (
	"testing"

	tele "gopkg.in/telebot.v4"

	tg "github.com/hustlex/hustlexbot/core/telegram"
	"github.com/hustlex/hustlexbot/core/telegram/commands"
)

type fakeContext struct {
	tele.Context
	upd       tele.Update
	store     map[string]interface{}
	responded int
}

func newFakeContext(upd tele.Update) *fakeContext {
	return &fakeContext{upd: upd, store: map[string]interface{}{}}
}

func (f *fakeContext) Update() tele.Update { return f.upd }
func (f *fakeContext) Sender() *tele.User {
	switch {
	case f.upd.Message != nil:
		return f.upd.Message.Sender
	case f.upd.Callback != nil:
		return f.upd.Callback.Sender
	}
	return nil
}
func (f *fakeContext) Chat() *tele.Chat {
	if f.upd.Message != nil {
		return f.upd.Message.Chat
	}
	return nil
}
func (f *fakeContext) Text() string {
	if f.upd.Message != nil {
		return f.upd.Message.Text
	}
	return ""
}
func (f *fakeContext) Callback() *tele.Callback                { return f.upd.Callback }
func (f *fakeContext) Get(key string) interface{}              { return f.store[key] }
func (f *fakeContext) Set(key string, v interface{})           { f.store[key] = v }
func (f *fakeContext) Respond(...*tele.CallbackResponse) error { f.responded++; return nil }

type fakeFSM struct {
	active bool
	calls  int
}

func (f *fakeFSM) InProgress(int64) bool { return f.active }
func (f *fakeFSM) ManagerHandler(tele.Context) error {
	f.calls++
	return nil
}

func message(text string, photo bool) tele.Update {
	msg := &tele.Message{
		Text:   text,
		Sender: &tele.User{ID: 1},
		Chat:   &tele.Chat{ID: 1},
	}
	if photo {
		msg.Photo = &tele.Photo{File: tele.File{FileID: "f1"}}
	}
	return tele.Update{ID: 1, Message: msg}
}

func routeFor(routes []tg.Route, endpoint string) tele.HandlerFunc {
	for _, r := range routes {
		if r.Endpoint == endpoint {
			return r.Handler
		}
	}
	return nil
}

func TestTextRoutesPreferMenuAliasOverFlow(t *testing.T) {
	setupCalls := 0
	reg := tg.NewRegistry()
	reg.RegisterCommand("/setup", commands.Command{
		Handler:     func(tele.Context) error { setupCalls++; return nil },
		Description: "setup",
		Aliases:     []string{"👤 Profile Setup"},
	})
	fsm := &fakeFSM{active: true}
	text := routeFor(TextRoutes(fsm, reg, TextOptions{}), tele.OnText)

	_ = text(newFakeContext(message("👤 Profile Setup", false)))
	_ = text(newFakeContext(message("BSc CS", false)))

	if setupCalls != 1 {
		t.Fatalf("alias handler calls = %d, want 1", setupCalls)
	}
	if fsm.calls != 1 {
		t.Fatalf("fsm calls = %d, want 1", fsm.calls)
	}
}

func TestTextRoutesFallbackWhenIdle(t *testing.T) {
	unknown := 0
	fsm := &fakeFSM{}
	text := routeFor(TextRoutes(fsm, tg.NewRegistry(), TextOptions{
		UnknownText: func(tele.Context) error { unknown++; return nil },
	}), tele.OnText)

	_ = text(newFakeContext(message("hello", false)))
	if unknown != 1 || fsm.calls != 0 {
		t.Fatalf("unknown=%d fsm=%d", unknown, fsm.calls)
	}
}

func TestPhotoRouteRequiresActiveFlow(t *testing.T) {
	unexpected := 0
	fsm := &fakeFSM{}
	photo := routeFor(TextRoutes(fsm, nil, TextOptions{
		UnknownPhoto: func(tele.Context) error { unexpected++; return nil },
	}), tele.OnPhoto)

	_ = photo(newFakeContext(message("", true)))
	fsm.active = true
	_ = photo(newFakeContext(message("", true)))

	if unexpected != 1 || fsm.calls != 1 {
		t.Fatalf("unexpected=%d fsm=%d", unexpected, fsm.calls)
	}
}

func TestCallbackRouteDispatchesByUnique(t *testing.T) {
	reg := tg.NewRegistry()
	skipped := 0
	if err := reg.RegisterCallback("skip_step", func(tele.Context) error { skipped++; return nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	notFound := 0
	route := CallbackRoute(reg, CallbackOptions{NotFound: func(tele.Context) error { notFound++; return nil }})

	known := newFakeContext(tele.Update{ID: 2, Callback: &tele.Callback{Data: "\fskip_step", Sender: &tele.User{ID: 1}}})
	_ = route.Handler(known)
	unknown := newFakeContext(tele.Update{ID: 3, Callback: &tele.Callback{Data: "\fupload_image", Sender: &tele.User{ID: 1}}})
	_ = route.Handler(unknown)

	if skipped != 1 || known.responded != 1 {
		t.Fatalf("skipped=%d responded=%d", skipped, known.responded)
	}
	if notFound != 1 || unknown.responded != 0 {
		t.Fatalf("notFound=%d responded=%d", notFound, unknown.responded)
	}
}

func TestNormalizeHandlerName(t *testing.T) {
	if got := normalizeHandlerName("/Setup Now"); got != "setup_now" {
		t.Fatalf("normalizeHandlerName = %q", got)
	}
	if got := normalizeHandlerName(" "); got != "unknown" {
		t.Fatalf("normalizeHandlerName blank = %q", got)
	}
}
