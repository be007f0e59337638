package router

import (
	tele "gopkg.in/telebot.v4"
)

type fakeContext struct {
	tele.Context

	update    tele.Update
	store     map[string]interface{}
	responded int
}

func newFakeContext(upd tele.Update) *fakeContext {
	return &fakeContext{update: upd, store: map[string]interface{}{}}
}

func textUpdate(userID int64, text string) tele.Update {
	return tele.Update{ID: 1, Message: &tele.Message{
		Sender: &tele.User{ID: userID},
		Chat:   &tele.Chat{ID: userID},
		Text:   text,
	}}
}

func photoUpdate(userID int64) tele.Update {
	return tele.Update{ID: 2, Message: &tele.Message{
		Sender: &tele.User{ID: userID},
		Chat:   &tele.Chat{ID: userID},
		Photo:  &tele.Photo{File: tele.File{FileID: "ph"}},
	}}
}

func cbUpdate(userID int64, data string) tele.Update {
	return tele.Update{ID: 3, Callback: &tele.Callback{
		Sender:  &tele.User{ID: userID},
		Message: &tele.Message{Chat: &tele.Chat{ID: userID}},
		Data:    data,
	}}
}

func (f *fakeContext) Update() tele.Update        { return f.update }
func (f *fakeContext) Callback() *tele.Callback   { return f.update.Callback }
func (f *fakeContext) Get(key string) interface{} { return f.store[key] }
func (f *fakeContext) Set(key string, v interface{}) {
	f.store[key] = v
}

func (f *fakeContext) Respond(...*tele.CallbackResponse) error {
	f.responded++
	return nil
}

func (f *fakeContext) Text() string {
	if f.update.Message != nil {
		return f.update.Message.Text
	}
	return ""
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
	if f.update.Message != nil {
		return f.update.Message.Chat
	}
	if f.update.Callback != nil && f.update.Callback.Message != nil {
		return f.update.Callback.Message.Chat
	}
	return nil
}
