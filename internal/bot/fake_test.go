package bot

import (
	"errors"
	"sync"

	tele "gopkg.in/telebot.v4"
)

type sent struct {
	what   interface{}
	markup *tele.ReplyMarkup
	mode   tele.ParseMode
	edit   bool
}

func (s sent) text() string {
	switch v := s.what.(type) {
	case string:
		return v
	case *tele.Photo:
		return v.Caption
	}
	return ""
}

type fakeContext struct {
	tele.Context
	mu        sync.Mutex
	upd       tele.Update
	sender    *tele.User
	store     map[string]interface{}
	out       []sent
	responded []*tele.CallbackResponse
	failPhoto bool
	failEdit  bool
	// badMarkdown rejects every Markdown send the way the Bot API rejects
	// unparsable entities.
	badMarkdown bool
}

func newFake(user *tele.User, msg *tele.Message, cb *tele.Callback) *fakeContext {
	chat := &tele.Chat{ID: user.ID, Type: tele.ChatPrivate}
	if msg != nil {
		msg.Sender, msg.Chat = user, chat
	}
	if cb != nil {
		cb.Sender = user
		cb.Message = &tele.Message{ID: 99, Chat: chat}
	}
	return &fakeContext{
		upd:    tele.Update{ID: 1, Message: msg, Callback: cb},
		sender: user,
		store:  map[string]interface{}{},
	}
}

func textCtx(user *tele.User, text string) *fakeContext {
	return newFake(user, &tele.Message{Text: text}, nil)
}

func photoCtx(user *tele.User, fileID string) *fakeContext {
	return newFake(user, &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: fileID}}}, nil)
}

func callbackCtx(user *tele.User, unique string) *fakeContext {
	return newFake(user, nil, &tele.Callback{Data: "\f" + unique})
}

func (f *fakeContext) Update() tele.Update      { return f.upd }
func (f *fakeContext) Sender() *tele.User       { return f.sender }
func (f *fakeContext) Message() *tele.Message   { return f.upd.Message }
func (f *fakeContext) Callback() *tele.Callback { return f.upd.Callback }
func (f *fakeContext) Chat() *tele.Chat {
	switch {
	case f.upd.Message != nil:
		return f.upd.Message.Chat
	case f.upd.Callback != nil:
		return f.upd.Callback.Message.Chat
	}
	return nil
}
func (f *fakeContext) Text() string {
	if f.upd.Message != nil {
		return f.upd.Message.Text
	}
	return ""
}
func (f *fakeContext) Get(key string) interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store[key]
}
func (f *fakeContext) Set(key string, v interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[key] = v
}

func parseModeOf(opts []interface{}) tele.ParseMode {
	for _, o := range opts {
		if v, ok := o.(*tele.SendOptions); ok && v != nil {
			return v.ParseMode
		}
	}
	return tele.ModeDefault
}

func markupOf(opts []interface{}) *tele.ReplyMarkup {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil {
				return v.ReplyMarkup
			}
		case *tele.ReplyMarkup:
			return v
		}
	}
	return nil
}

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	if _, ok := what.(*tele.Photo); ok && f.failPhoto {
		return errors.New("telegram: wrong file identifier")
	}
	if f.badMarkdown && parseModeOf(opts) == tele.ModeMarkdown {
		return errors.New("telegram: Bad Request: can't parse entities: Can't find end of the entity (400)")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.out = append(f.out, sent{what: what, markup: markupOf(opts), mode: parseModeOf(opts)})
	return nil
}

func (f *fakeContext) Edit(what interface{}, opts ...interface{}) error {
	if f.failEdit {
		return errors.New("telegram: message can't be edited")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.out = append(f.out, sent{what: what, markup: markupOf(opts), edit: true})
	return nil
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(resp) > 0 {
		f.responded = append(f.responded, resp[0])
	} else {
		f.responded = append(f.responded, nil)
	}
	return nil
}

func (f *fakeContext) last() sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.out) == 0 {
		return sent{}
	}
	return f.out[len(f.out)-1]
}
