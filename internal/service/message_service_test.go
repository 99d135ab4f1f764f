package service

import (
	"context"
	"testing"
	"time"

	"github.com/felipevm/batepapo-api/internal/domain"
	"github.com/felipevm/batepapo-api/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newMessageService(t *testing.T, members ...string) *MessageService {
	t.Helper()
	participants := repository.NewInMemoryParticipantRepository()
	for _, name := range members {
		require.NoError(t, participants.Insert(context.Background(), domain.NewParticipant(name, time.Now())))
	}
	return NewMessageService(repository.NewInMemoryMessageRepository(), participants, nil)
}

func TestMessageService_Send(t *testing.T) {
	req := require.New(t)
	svc := newMessageService(t, "Ana")
	ctx := context.Background()

	msg, err := svc.Send(ctx, "Ana", domain.Broadcast, "oi", domain.TypePublic)
	req.NoError(err)
	req.NotEqual(uuid.Nil, msg.ID)
	req.Equal("Ana", msg.From)
	req.Regexp(`^\d{2}:\d{2}:\d{2}$`, msg.Time)

	list, err := svc.ListVisible(ctx, "Ana", 0)
	req.NoError(err)
	req.Len(list, 1)
}

func TestMessageService_Send_UnknownSender(t *testing.T) {
	req := require.New(t)
	svc := newMessageService(t, "Ana")
	ctx := context.Background()

	_, err := svc.Send(ctx, "Bob", domain.Broadcast, "oi", domain.TypePublic)
	req.ErrorIs(err, ErrUnknownSender)

	// Rejected sends leave no trace in the log.
	list, err := svc.ListVisible(ctx, "Ana", 0)
	req.NoError(err)
	req.Empty(list)
}

func TestMessageService_Visibility(t *testing.T) {
	req := require.New(t)
	svc := newMessageService(t, "Ana", "Bob", "Carol")
	ctx := context.Background()

	_, err := svc.Send(ctx, "Ana", domain.Broadcast, "oi galera", domain.TypePublic)
	req.NoError(err)
	_, err = svc.AppendStatus(ctx, "Bob", domain.StatusJoined)
	req.NoError(err)
	_, err = svc.Send(ctx, "Ana", "Bob", "segredo", domain.TypePrivate)
	req.NoError(err)

	texts := func(requester string) []string {
		list, err := svc.ListVisible(ctx, requester, 0)
		req.NoError(err)
		out := make([]string, len(list))
		for i, m := range list {
			out[i] = m.Text
		}
		return out
	}

	// Public and status entries reach everyone; the private one only reaches
	// its sender and recipient.
	req.Equal([]string{"oi galera", domain.StatusJoined, "segredo"}, texts("Ana"))
	req.Equal([]string{"oi galera", domain.StatusJoined, "segredo"}, texts("Bob"))
	req.Equal([]string{"oi galera", domain.StatusJoined}, texts("Carol"))
}

func TestMessageService_ListVisible_TailLimit(t *testing.T) {
	req := require.New(t)
	svc := newMessageService(t, "Ana", "Bob")
	ctx := context.Background()

	for _, text := range []string{"um", "dois", "tres", "quatro", "cinco"} {
		_, err := svc.Send(ctx, "Ana", domain.Broadcast, text, domain.TypePublic)
		req.NoError(err)
	}

	list, err := svc.ListVisible(ctx, "Bob", 2)
	req.NoError(err)
	req.Len(list, 2)
	req.Equal("quatro", list[0].Text)
	req.Equal("cinco", list[1].Text)

	// Limit larger than the visible set returns everything.
	list, err = svc.ListVisible(ctx, "Bob", 50)
	req.NoError(err)
	req.Len(list, 5)

	// Non-positive limit disables truncation.
	list, err = svc.ListVisible(ctx, "Bob", 0)
	req.NoError(err)
	req.Len(list, 5)
	list, err = svc.ListVisible(ctx, "Bob", -3)
	req.NoError(err)
	req.Len(list, 5)
}

func TestMessageService_ListVisible_LimitBoundsVisibleNotRaw(t *testing.T) {
	req := require.New(t)
	svc := newMessageService(t, "Ana", "Bob", "Carol")
	ctx := context.Background()

	_, err := svc.Send(ctx, "Carol", domain.Broadcast, "publico", domain.TypePublic)
	req.NoError(err)
	for i := 0; i < 3; i++ {
		_, err = svc.Send(ctx, "Ana", "Bob", "segredo", domain.TypePrivate)
		req.NoError(err)
	}

	// Carol sees one visible message; the private chatter in between does
	// not consume her limit.
	list, err := svc.ListVisible(ctx, "Carol", 2)
	req.NoError(err)
	req.Len(list, 1)
	req.Equal("publico", list[0].Text)
}

func TestMessageService_Edit(t *testing.T) {
	req := require.New(t)
	svc := newMessageService(t, "Ana", "Bob")
	ctx := context.Background()

	msg, err := svc.Send(ctx, "Ana", domain.Broadcast, "oi", domain.TypePublic)
	req.NoError(err)

	req.NoError(svc.Edit(ctx, msg.ID, "Ana", "Bob", "oi Bob", domain.TypePrivate))

	list, err := svc.ListVisible(ctx, "Bob", 0)
	req.NoError(err)
	req.Len(list, 1)
	req.Equal("oi Bob", list[0].Text)
	req.Equal(domain.TypePrivate, list[0].Type)
	req.Equal("Ana", list[0].From)
	req.Equal(msg.Time, list[0].Time)
}

func TestMessageService_Edit_OwnershipAndNotFound(t *testing.T) {
	req := require.New(t)
	svc := newMessageService(t, "Ana", "Bob")
	ctx := context.Background()

	msg, err := svc.Send(ctx, "Ana", domain.Broadcast, "oi", domain.TypePublic)
	req.NoError(err)

	req.ErrorIs(svc.Edit(ctx, msg.ID, "Bob", "Todos", "hackeado", domain.TypePublic), ErrNotMessageOwner)
	req.ErrorIs(svc.Edit(ctx, uuid.New(), "Ana", "Todos", "oi", domain.TypePublic), ErrMessageNotFound)
}

func TestMessageService_Remove(t *testing.T) {
	req := require.New(t)
	svc := newMessageService(t, "Ana", "Bob")
	ctx := context.Background()

	msg, err := svc.Send(ctx, "Ana", domain.Broadcast, "oi", domain.TypePublic)
	req.NoError(err)

	req.ErrorIs(svc.Remove(ctx, msg.ID, "Bob"), ErrNotMessageOwner)
	req.NoError(svc.Remove(ctx, msg.ID, "Ana"))
	req.ErrorIs(svc.Remove(ctx, msg.ID, "Ana"), ErrMessageNotFound)
}
