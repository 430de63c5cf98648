package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/live"
	messaging "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/application/domain"
)

func strPtr(s string) *string { return &s }

func newSendUC(repo *fakeMessagingRepo, users *fakeUserDirectory, up *fakeUploader, pusher *fakePusher) *SendMessageUseCase {
	return NewSendMessageUseCase(repo, users, up, pusher)
}

func TestSendMessageCreatesConversationAndPersistsOffline(t *testing.T) {
	repo := newFakeMessagingRepo()
	pusher := newFakePusher() // recipient offline
	uc := newSendUC(repo, newFakeUserDirectory("alice", "bob"), &fakeUploader{}, pusher)

	res, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID:    "alice",
		RecipientID: "bob",
		Body:        strPtr("hi bob"),
	})
	require.NoError(t, err)
	require.NotNil(t, res.Message)

	assert.False(t, res.Pushed, "offline recipient must not count as pushed")
	assert.Empty(t, pusher.framesFor("bob"))

	conv, err := repo.FindConversationByPair(context.Background(), messaging.PairKey("alice", "bob"))
	require.NoError(t, err)
	require.NotNil(t, conv, "send to a fresh pair must create the conversation")
	assert.Equal(t, "hi bob", conv.LastMessage.Text)
	assert.Equal(t, "alice", conv.LastMessage.SenderID)
	assert.False(t, conv.LastMessage.Seen)

	msgs, err := repo.ListMessages(context.Background(), conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].Seen)
}

func TestSendMessagePushesWhenRecipientOnline(t *testing.T) {
	repo := newFakeMessagingRepo()
	pusher := newFakePusher("bob")
	uc := newSendUC(repo, newFakeUserDirectory("alice", "bob"), &fakeUploader{}, pusher)

	res, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID:    "alice",
		RecipientID: "bob",
		Body:        strPtr("you there?"),
	})
	require.NoError(t, err)
	assert.True(t, res.Pushed)

	frames := pusher.framesFor("bob")
	require.Len(t, frames, 1)

	var env live.Envelope
	require.NoError(t, json.Unmarshal(frames[0], &env))
	assert.Equal(t, live.EventNewMessage, env.Type)
	assert.NotEmpty(t, env.EventID)

	var p live.MessagePayload
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, res.Message.ID, p.ID)
	assert.Equal(t, "alice", p.SenderID)
	require.NotNil(t, p.Body)
	assert.Equal(t, "you there?", *p.Body)
}

func TestSendMessageReusesExistingConversation(t *testing.T) {
	repo := newFakeMessagingRepo()
	uc := newSendUC(repo, newFakeUserDirectory("alice", "bob"), &fakeUploader{}, newFakePusher())

	_, err := uc.Execute(context.Background(), SendMessageInput{SenderID: "alice", RecipientID: "bob", Body: strPtr("first")})
	require.NoError(t, err)

	// Reply from the other direction lands in the same conversation.
	_, err = uc.Execute(context.Background(), SendMessageInput{SenderID: "bob", RecipientID: "alice", Body: strPtr("second")})
	require.NoError(t, err)

	assert.Len(t, repo.convs, 1)
	conv, _ := repo.FindConversationByPair(context.Background(), messaging.PairKey("alice", "bob"))
	assert.Equal(t, "second", conv.LastMessage.Text)
	assert.Equal(t, "bob", conv.LastMessage.SenderID)
	msgs, _ := repo.ListMessages(context.Background(), conv.ID)
	assert.Len(t, msgs, 2)
}

func TestSendMessageConcurrentFirstContactSingleConversation(t *testing.T) {
	repo := newFakeMessagingRepo()
	uc := newSendUC(repo, newFakeUserDirectory("alice", "bob"), &fakeUploader{}, newFakePusher())

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = uc.Execute(context.Background(), SendMessageInput{SenderID: "alice", RecipientID: "bob", Body: strPtr("from alice")})
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = uc.Execute(context.Background(), SendMessageInput{SenderID: "bob", RecipientID: "alice", Body: strPtr("from bob")})
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	assert.Len(t, repo.convs, 1, "racing first messages must converge on one conversation")
	conv, _ := repo.FindConversationByPair(context.Background(), messaging.PairKey("alice", "bob"))
	require.NotNil(t, conv)
	msgs, _ := repo.ListMessages(context.Background(), conv.ID)
	assert.Len(t, msgs, 2, "both racing messages must land in the surviving conversation")
}

func TestSendMessageValidation(t *testing.T) {
	uc := newSendUC(newFakeMessagingRepo(), newFakeUserDirectory("alice", "bob"), &fakeUploader{}, newFakePusher())

	_, err := uc.Execute(context.Background(), SendMessageInput{SenderID: "alice", RecipientID: "bob"})
	assert.ErrorIs(t, err, apperr.ErrValidation, "neither body nor media")

	_, err = uc.Execute(context.Background(), SendMessageInput{SenderID: "alice", RecipientID: "alice", Body: strPtr("hi me")})
	assert.ErrorIs(t, err, apperr.ErrValidation, "self-send")

	_, err = uc.Execute(context.Background(), SendMessageInput{SenderID: "", RecipientID: "bob", Body: strPtr("hi")})
	assert.ErrorIs(t, err, apperr.ErrValidation, "missing sender")
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	uc := newSendUC(newFakeMessagingRepo(), newFakeUserDirectory("alice"), &fakeUploader{}, newFakePusher())

	_, err := uc.Execute(context.Background(), SendMessageInput{SenderID: "alice", RecipientID: "ghost", Body: strPtr("hello?")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSendMessageUploadFailureAbortsBeforePersistence(t *testing.T) {
	repo := newFakeMessagingRepo()
	up := &fakeUploader{err: errors.New("disk full")}
	uc := newSendUC(repo, newFakeUserDirectory("alice", "bob"), up, newFakePusher())

	_, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID:    "alice",
		RecipientID: "bob",
		Media:       []byte{0xFF, 0xD8},
		MediaKind:   "image",
	})
	require.ErrorIs(t, err, apperr.ErrUpload)

	assert.Empty(t, repo.convs, "failed upload must leave no conversation behind")
	assert.Empty(t, repo.msgs, "failed upload must leave no message behind")
}

func TestSendMessageMediaOnlyUsesMediaSummary(t *testing.T) {
	repo := newFakeMessagingRepo()
	up := &fakeUploader{url: "https://cdn.local/abc.jpg"}
	uc := newSendUC(repo, newFakeUserDirectory("alice", "bob"), up, newFakePusher())

	res, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID:    "alice",
		RecipientID: "bob",
		Media:       []byte{0xFF, 0xD8},
		MediaKind:   "image",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Message.MediaURL)
	assert.Equal(t, "https://cdn.local/abc.jpg", *res.Message.MediaURL)
	assert.Nil(t, res.Message.Body)
	assert.Equal(t, 1, up.calls)

	conv, _ := repo.FindConversationByPair(context.Background(), messaging.PairKey("alice", "bob"))
	assert.Equal(t, "[media]", conv.LastMessage.Text)
}
