package bot

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

type sentMsg struct {
	what interface{}
	opts []interface{}
}

func (s sentMsg) text() string {
	t, _ := s.what.(string)
	return t
}

func (s sentMsg) markup() *tele.ReplyMarkup {
	for _, o := range s.opts {
		if so, ok := o.(*tele.SendOptions); ok {
			return so.ReplyMarkup
		}
	}
	return nil
}

type fakeContext struct {
	tele.Context

	update tele.Update
	store  map[string]interface{}
	sent   []sentMsg
	edited []sentMsg
}

func newFakeContext(upd tele.Update) *fakeContext {
	return &fakeContext{update: upd, store: map[string]interface{}{}}
}

func textUpdate(userID int64, text string) tele.Update {
	return tele.Update{ID: 1, Message: &tele.Message{
		Sender: &tele.User{ID: userID, Username: "alice"},
		Chat:   &tele.Chat{ID: userID},
		Text:   text,
	}}
}

func photoUpdate(userID int64, fileID string) tele.Update {
	return tele.Update{ID: 2, Message: &tele.Message{
		Sender: &tele.User{ID: userID, Username: "alice"},
		Chat:   &tele.Chat{ID: userID},
		Photo:  &tele.Photo{File: tele.File{FileID: fileID}},
	}}
}

func documentUpdate(userID int64, fileID, mime string) tele.Update {
	return tele.Update{ID: 3, Message: &tele.Message{
		Sender:   &tele.User{ID: userID, Username: "alice"},
		Chat:     &tele.Chat{ID: userID},
		Document: &tele.Document{File: tele.File{FileID: fileID}, MIME: mime},
	}}
}

func callbackUpdate(userID int64, data string) tele.Update {
	return tele.Update{ID: 4, Callback: &tele.Callback{
		Sender:  &tele.User{ID: userID},
		Message: &tele.Message{ID: 77, Chat: &tele.Chat{ID: userID}},
		Data:    data,
	}}
}

func (f *fakeContext) Update() tele.Update      { return f.update }
func (f *fakeContext) Callback() *tele.Callback { return f.update.Callback }

func (f *fakeContext) Message() *tele.Message {
	if f.update.Message != nil {
		return f.update.Message
	}
	if f.update.Callback != nil {
		return f.update.Callback.Message
	}
	return nil
}

func (f *fakeContext) Sender() *tele.User {
	if f.update.Message != nil {
		return f.update.Message.Sender
	}
	if f.update.Callback != nil {
		return f.update.Callback.Sender
	}
	return nil
}

func (f *fakeContext) Chat() *tele.Chat {
	if m := f.Message(); m != nil {
		return m.Chat
	}
	return nil
}

func (f *fakeContext) Text() string {
	if f.update.Message != nil {
		return f.update.Message.Text
	}
	return ""
}

func (f *fakeContext) Get(key string) interface{}              { return f.store[key] }
func (f *fakeContext) Set(key string, v interface{})           { f.store[key] = v }
func (f *fakeContext) Respond(...*tele.CallbackResponse) error { return nil }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, sentMsg{what: what, opts: opts})
	return nil
}

func (f *fakeContext) EditOrSend(what interface{}, opts ...interface{}) error {
	f.edited = append(f.edited, sentMsg{what: what, opts: opts})
	return nil
}

type apiSend struct {
	to string
	sentMsg
}

type fakeAPI struct {
	mu    sync.Mutex
	sent  []apiSend
	edits []tele.Editable
}

func (f *fakeAPI) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, apiSend{to: to.Recipient(), sentMsg: sentMsg{what: what, opts: opts}})
	return &tele.Message{}, nil
}

func (f *fakeAPI) EditReplyMarkup(msg tele.Editable, _ *tele.ReplyMarkup) (*tele.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, msg)
	return &tele.Message{}, nil
}
