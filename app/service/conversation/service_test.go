package conversation

import (
	"modelchat/app/provider"
	"testing"

	"github.com/samber/do"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	svc, err := New(do.New())
	require.NoError(t, err)

	return svc
}

func TestBegin_AppendsUserMessage(t *testing.T) {
	svc := newTestService(t)

	ex, err := svc.Begin("  hello  ")
	require.NoError(t, err)
	require.Equal(t, "hello", ex.UserMessage.Text)
	require.Equal(t, SenderUser, ex.UserMessage.Sender)
	require.Equal(t, provider.IDGemini, ex.Provider)
	require.True(t, svc.InFlight())

	messages := svc.Snapshot()
	require.Len(t, messages, 1)
	require.Equal(t, "hello", messages[0].Text)
}

func TestBegin_EmptyText(t *testing.T) {
	svc := newTestService(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.Begin(text)
		require.ErrorIs(t, err, ErrEmptyMessage)
	}

	require.Empty(t, svc.Snapshot())
	require.False(t, svc.InFlight())
}

func TestBegin_RejectsSecondExchange(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Begin("first")
	require.NoError(t, err)

	_, err = svc.Begin("second")
	require.ErrorIs(t, err, ErrExchangeInFlight)

	require.Len(t, svc.Snapshot(), 1)
}

func TestComplete_AppendsBotMessage(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Select(provider.IDChatGPT))

	ex, err := svc.Begin("hello")
	require.NoError(t, err)

	require.True(t, svc.Complete(ex.ID, "hi back", ex.Provider))
	require.False(t, svc.InFlight())

	messages := svc.Snapshot()
	require.Len(t, messages, 2)
	require.Equal(t, SenderUser, messages[0].Sender)
	require.Equal(t, SenderBot, messages[1].Sender)
	require.Equal(t, "hi back", messages[1].Text)
	require.Equal(t, provider.IDChatGPT, messages[1].Provider)
}

func TestComplete_WrongID(t *testing.T) {
	svc := newTestService(t)

	ex, err := svc.Begin("hello")
	require.NoError(t, err)

	require.False(t, svc.Complete(ex.ID+1, "late", ex.Provider))
	require.True(t, svc.InFlight())
	require.Len(t, svc.Snapshot(), 1)
}

func TestComplete_StaleAfterSelect(t *testing.T) {
	svc := newTestService(t)

	ex, err := svc.Begin("hello")
	require.NoError(t, err)

	require.NoError(t, svc.Select(provider.IDClaude))

	require.False(t, svc.Complete(ex.ID, "late reply", ex.Provider))
	require.Empty(t, svc.Snapshot())
	require.False(t, svc.InFlight())
}

func TestSelect_ResetsMessages(t *testing.T) {
	svc := newTestService(t)

	ex, err := svc.Begin("hello")
	require.NoError(t, err)
	require.True(t, svc.Complete(ex.ID, "reply", ex.Provider))
	require.Len(t, svc.Snapshot(), 2)

	require.NoError(t, svc.Select(provider.IDClaude))
	require.Empty(t, svc.Snapshot())
	require.Equal(t, provider.IDClaude, svc.Selected())
}

func TestSelect_UnknownProvider(t *testing.T) {
	svc := newTestService(t)

	require.ErrorIs(t, svc.Select(provider.ID("gpt-5")), ErrUnknownProvider)
	require.Equal(t, provider.IDGemini, svc.Selected())
}

func TestReset(t *testing.T) {
	svc := newTestService(t)

	ex, err := svc.Begin("hello")
	require.NoError(t, err)

	svc.Reset()
	require.Empty(t, svc.Snapshot())
	require.False(t, svc.InFlight())

	// the pending reply must not land after a reset
	require.False(t, svc.Complete(ex.ID, "late", ex.Provider))
	require.Empty(t, svc.Snapshot())
}

func TestSnapshot_IsACopy(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Begin("hello")
	require.NoError(t, err)

	snapshot := svc.Snapshot()
	snapshot[0].Text = "mutated"

	require.Equal(t, "hello", svc.Snapshot()[0].Text)
}
