package socket

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DedS3t/twoworlds-backend/platform/board"
	"github.com/DedS3t/twoworlds-backend/platform/game"
	"github.com/DedS3t/twoworlds-backend/platform/store"
	"github.com/DedS3t/twoworlds-backend/pkg/errs"
	socketio "github.com/googollee/go-socket.io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type sent struct {
	room  string
	event string
	args  []interface{}
}

type fakeBroadcaster struct {
	sent []sent
}

func (b *fakeBroadcaster) BroadcastToRoom(_, room, event string, args ...interface{}) bool {
	b.sent = append(b.sent, sent{room: room, event: event, args: args})
	return true
}

func TestBroadcastEncodesJSON(t *testing.T) {
	out := &fakeBroadcaster{}
	s := &Server{out: out}

	s.BroadcastToRoom("room", game.EventRefreshDoubles, game.DoublesEvent{Count: 2})
	s.BroadcastToRoom("room", game.EventNext, nil)

	require.Len(t, out.sent, 2)
	assert.Equal(t, sent{room: "room", event: "refreshDoubles", args: []interface{}{`{"count":2}`}}, out.sent[0])
	assert.Equal(t, "next", out.sent[1].event)
	assert.Empty(t, out.sent[1].args)
}

func TestErrorMessageHidesInternals(t *testing.T) {
	msg := errorMessage(errs.NewInvalidTransition("game.RollDice", "it is not bob's turn"))
	assert.Equal(t, "invalid transition", msg["kind"])
	assert.Contains(t, msg["msg"], "not bob's turn")

	msg = errorMessage(errs.Wrap("store.Load", assert.AnError))
	assert.Equal(t, "internal error", msg["msg"])
}

type emitted struct {
	event string
	args  []interface{}
}

// fakeConn records what the server sends to one client.
type fakeConn struct {
	socketio.Conn
	ctx     interface{}
	emitted []emitted
	rooms   []string
}

func (c *fakeConn) ID() string { return "conn" }
func (c *fakeConn) Context() interface{} { return c.ctx }
func (c *fakeConn) SetContext(v interface{}) { c.ctx = v }
func (c *fakeConn) Join(room string) { c.rooms = append(c.rooms, room) }
func (c *fakeConn) Emit(event string, v ...interface{}) {
	c.emitted = append(c.emitted, emitted{event: event, args: v})
}

func (c *fakeConn) events() []string {
	var out []string
	for _, e := range c.emitted {
		out = append(out, e.event)
	}
	return out
}

// decode unmarshals the JSON string payload of the last event named event.
func (c *fakeConn) decode(t *testing.T, event string, v interface{}) {
	t.Helper()
	for i := len(c.emitted) - 1; i >= 0; i-- {
		if c.emitted[i].event != event {
			continue
		}
		require.Len(t, c.emitted[i].args, 1)
		raw, ok := c.emitted[i].args[0].(string)
		require.True(t, ok, "%s payload is not a string", event)
		require.NoError(t, json.Unmarshal([]byte(raw), v))
		return
	}
	t.Fatalf("%s was not emitted", event)
}

func connected(t *testing.T, s *Server) *fakeConn {
	t.Helper()
	c := &fakeConn{}
	require.NoError(t, s.connect(c))
	require.NotNil(t, sessionOf(c))
	return c
}

func TestWrapRejectsMalformedPayload(t *testing.T) {
	s := &Server{opts: Options{IntentRate: float64(rate.Inf), IntentBurst: 1}}
	c := connected(t, s)
	calls := 0
	fn := wrap("skip", func(_ context.Context, _ socketio.Conn, msg roomIntent) error {
		calls++
		return nil
	})

	fn(c, `{"roomId":`)
	assert.Equal(t, 0, calls)
	var msg map[string]string
	c.decode(t, "error-message", &msg)
	assert.Equal(t, "malformed payload", msg["msg"])
	assert.Equal(t, "constraint violation", msg["kind"])

	fn(c, `{"roomId":"room","playerId":"alice"}`)
	assert.Equal(t, 1, calls)
	assert.Len(t, c.emitted, 1)
}

func TestWrapRateLimitsConnection(t *testing.T) {
	s := &Server{opts: Options{IntentRate: 1, IntentBurst: 1}}
	c := connected(t, s)
	var got []roomIntent
	fn := wrap("ackChance", func(_ context.Context, _ socketio.Conn, msg roomIntent) error {
		got = append(got, msg)
		return nil
	})

	fn(c, `{"roomId":"room","playerId":"alice"}`)
	fn(c, `{"roomId":"room","playerId":"alice"}`)
	assert.Equal(t, []roomIntent{{RoomId: "room", PlayerId: "alice"}}, got)

	var msg map[string]string
	c.decode(t, "error-message", &msg)
	assert.Equal(t, "too many requests", msg["msg"])
	assert.Equal(t, "concurrency conflict", msg["kind"])
}

func TestWrapReportsIntentErrors(t *testing.T) {
	c := &fakeConn{}
	fn := wrap("skip", func(_ context.Context, _ socketio.Conn, _ roomIntent) error {
		return errs.NewInvalidTransition("game.Skip", "it is not bob's turn")
	})

	fn(c, `{}`)
	var msg map[string]string
	c.decode(t, "error-message", &msg)
	assert.Equal(t, "invalid transition", msg["kind"])
	assert.Contains(t, msg["msg"], "not bob's turn")
}

func newJoinServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{out: &fakeBroadcaster{}, opts: Options{IntentRate: float64(rate.Inf), IntentBurst: 1}}
	s.svc = game.NewService(store.NewMemoryStore(), board.MustLoad(), s, nil, game.Options{Shuffle: func([]string) {}})
	_, err := s.svc.CreateRoom(context.Background(), "room", []string{"alice", "bob"})
	require.NoError(t, err)
	return s
}

func TestJoinRoomFailures(t *testing.T) {
	s := newJoinServer(t)

	for _, payload := range []string{`{"roomId":"missing","playerId":"alice"}`, `{"playerId":"alice"}`, `not json`} {
		c := connected(t, s)
		s.joinRoom(c, payload)
		assert.Equal(t, []string{"joinFailed"}, c.events(), payload)
		assert.Empty(t, c.rooms)
		assert.Empty(t, sessionOf(c).roomId)
	}
}

func TestJoinRoomReplaysState(t *testing.T) {
	s := newJoinServer(t)
	c := connected(t, s)

	s.joinRoom(c, `{"roomId":"room","playerId":"alice"}`)
	assert.Equal(t, []string{"joinSucceed", game.EventUpdateGameState, game.EventRefreshDoubles, game.EventShowDices}, c.events())
	assert.Equal(t, []string{"room"}, c.rooms)
	assert.Equal(t, "room", sessionOf(c).roomId)
	assert.Equal(t, "alice", sessionOf(c).playerId)

	var state game.GameStateEvent
	c.decode(t, game.EventUpdateGameState, &state)
	assert.True(t, state.Fresh)
	require.NotNil(t, state.IsPlayable)
	assert.True(t, *state.IsPlayable)
	assert.Len(t, state.GameState.Players, 2)

	spectator := connected(t, s)
	s.joinRoom(spectator, `{"roomId":"room","playerId":"erin"}`)
	var watched game.GameStateEvent
	spectator.decode(t, game.EventUpdateGameState, &watched)
	require.NotNil(t, watched.IsPlayable)
	assert.False(t, *watched.IsPlayable)
}
