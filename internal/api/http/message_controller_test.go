package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type messagePayload struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
	Time string `json:"time"`
}

func (e *testEnv) join(t *testing.T, name string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/participants", fmt.Sprintf(`{"name":%q}`, name), "")
	require.Equal(t, http.StatusCreated, rec.Code)
}

func (e *testEnv) send(t *testing.T, from, to, text, typ string) messagePayload {
	t.Helper()
	body := fmt.Sprintf(`{"to":%q,"text":%q,"type":%q}`, to, text, typ)
	rec := e.do(t, http.MethodPost, "/messages", body, from)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message messagePayload `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Message
}

func (e *testEnv) list(t *testing.T, user, query string) []messagePayload {
	t.Helper()
	rec := e.do(t, http.MethodGet, "/messages"+query, "", user)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Messages []messagePayload `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Messages
}

func TestSendMessage(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	env.join(t, "Ana")

	msg := env.send(t, "Ana", "Todos", "oi", "message")
	req.NotEmpty(msg.ID)
	req.Equal("Ana", msg.From)
	req.Equal("Todos", msg.To)
	req.Equal("oi", msg.Text)
	req.Equal("message", msg.Type)
}

func TestSendMessage_UnknownSender(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	env.join(t, "Ana")

	rec := env.do(t, http.MethodPost, "/messages", `{"to":"Todos","text":"oi","type":"message"}`, "Bob")
	req.Equal(http.StatusUnprocessableEntity, rec.Code)

	// Only Ana's join notice is in the log.
	req.Len(env.list(t, "Ana", ""), 1)
}

func TestSendMessage_Validation(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	env.join(t, "Ana")

	cases := []string{
		`{"to":"","text":"oi","type":"message"}`,
		`{"to":"Todos","text":"","type":"message"}`,
		`{"to":"Todos","text":"oi","type":"status"}`,
		`{"to":"Todos","text":"oi","type":"broadcast"}`,
		`{"to":"Todos","text":"<p></p>","type":"message"}`,
		`nope`,
	}
	for _, body := range cases {
		rec := env.do(t, http.MethodPost, "/messages", body, "Ana")
		req.Equal(http.StatusUnprocessableEntity, rec.Code, "body %q", body)
	}

	// Missing identity header is a validation failure too.
	rec := env.do(t, http.MethodPost, "/messages", `{"to":"Todos","text":"oi","type":"message"}`, "")
	req.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func TestListMessages_PrivateVisibility(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	env.join(t, "Ana")
	env.join(t, "Bob")
	env.join(t, "Carol")

	env.send(t, "Ana", "Bob", "segredo", "private_message")

	for _, member := range []string{"Ana", "Bob"} {
		texts := env.list(t, member, "")
		req.Contains(textsOf(texts), "segredo", "member %s", member)
	}
	req.NotContains(textsOf(env.list(t, "Carol", "")), "segredo")
}

func TestListMessages_Limit(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	env.join(t, "Ana")

	for i := 1; i <= 5; i++ {
		env.send(t, "Ana", "Todos", fmt.Sprintf("msg-%d", i), "message")
	}

	// 1 join notice + 5 messages visible; limit takes the most recent two in
	// their original order.
	msgs := env.list(t, "Ana", "?limit=2")
	req.Equal([]string{"msg-4", "msg-5"}, textsOf(msgs))

	// Absent, non-numeric or non-positive limits disable truncation.
	req.Len(env.list(t, "Ana", ""), 6)
	req.Len(env.list(t, "Ana", "?limit=abc"), 6)
	req.Len(env.list(t, "Ana", "?limit=0"), 6)
	req.Len(env.list(t, "Ana", "?limit=-2"), 6)
}

func TestEditMessage(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	env.join(t, "Ana")
	env.join(t, "Bob")

	msg := env.send(t, "Ana", "Todos", "oi", "message")

	rec := env.do(t, http.MethodPut, "/messages/"+msg.ID, `{"to":"Bob","text":"oi Bob","type":"private_message"}`, "Ana")
	req.Equal(http.StatusCreated, rec.Code)

	msgs := env.list(t, "Bob", "")
	last := msgs[len(msgs)-1]
	req.Equal("oi Bob", last.Text)
	req.Equal("private_message", last.Type)
	req.Equal("Ana", last.From)
	req.Equal(msg.Time, last.Time)
}

func TestEditMessage_Errors(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	env.join(t, "Ana")
	env.join(t, "Bob")

	msg := env.send(t, "Ana", "Todos", "oi", "message")
	body := `{"to":"Todos","text":"editado","type":"message"}`

	rec := env.do(t, http.MethodPut, "/messages/"+msg.ID, body, "Bob")
	req.Equal(http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPut, "/messages/00000000-0000-0000-0000-000000000001", body, "Ana")
	req.Equal(http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPut, "/messages/not-a-uuid", body, "Ana")
	req.Equal(http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPut, "/messages/"+msg.ID, `{"to":"","text":"","type":"message"}`, "Ana")
	req.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteMessage(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	env.join(t, "Ana")
	env.join(t, "Bob")

	msg := env.send(t, "Ana", "Todos", "oi", "message")

	rec := env.do(t, http.MethodDelete, "/messages/"+msg.ID, "", "Bob")
	req.Equal(http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodDelete, "/messages/"+msg.ID, "", "Ana")
	req.Equal(http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodDelete, "/messages/"+msg.ID, "", "Ana")
	req.Equal(http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/messages/not-a-uuid", "", "Ana")
	req.Equal(http.StatusNotFound, rec.Code)
}

func textsOf(msgs []messagePayload) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}
