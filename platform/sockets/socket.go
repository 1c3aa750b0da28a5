package socket

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/DedS3t/twoworlds-backend/platform/game"
	"github.com/DedS3t/twoworlds-backend/pkg/errs"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const namespace = "/"

type Options struct {
	Origins []string
	// IntentRate and IntentBurst bound the intents of one connection.
	IntentRate  float64
	IntentBurst int
}

// broadcaster is the part of the socket.io server used for room fan-out.
type broadcaster interface {
	BroadcastToRoom(namespace, room, event string, args ...interface{}) bool
}

type Server struct {
	io   *socketio.Server
	out  broadcaster
	svc  *game.Service
	opts Options
}

// session is the per-connection context.
type session struct {
	id       string
	roomId   string
	playerId string
	limiter  *rate.Limiter
}

func NewServer(opts Options) (*Server, error) {
	server, err := socketio.NewServer(nil)
	if err != nil {
		return nil, err
	}
	if opts.IntentRate <= 0 {
		opts.IntentRate = float64(rate.Inf)
	}
	if opts.IntentBurst <= 0 {
		opts.IntentBurst = 1
	}
	return &Server{io: server, out: server, opts: opts}, nil
}

// BroadcastToRoom sends payload as a JSON string to every connection in
// the room.
func (s *Server) BroadcastToRoom(roomId, event string, payload interface{}) {
	if payload == nil {
		s.out.BroadcastToRoom(namespace, roomId, event)
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).WithField("event", event).Error("encoding event failed")
		return
	}
	s.out.BroadcastToRoom(namespace, roomId, event, string(raw))
}

func emit(c socketio.Conn, event string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).WithField("event", event).Error("encoding event failed")
		return
	}
	c.Emit(event, string(raw))
}

func errorMessage(err error) map[string]string {
	return map[string]string{"msg": errs.Message(err), "kind": errs.KindOf(err).String()}
}

func emitError(c socketio.Conn, err error) {
	fields := log.Fields{"conn": c.ID(), "kind": errs.KindOf(err).String()}
	if errs.KindOf(err) == errs.Internal {
		log.WithFields(fields).WithError(err).Error("intent failed")
	} else {
		log.WithFields(fields).WithError(err).Debug("intent rejected")
	}
	emit(c, "error-message", errorMessage(err))
}

func sessionOf(c socketio.Conn) *session {
	if sess, ok := c.Context().(*session); ok {
		return sess
	}
	return nil
}

// handle registers an intent whose JSON string payload decodes into T.
func handle[T any](s *Server, event string, fn func(ctx context.Context, c socketio.Conn, msg T) error) {
	s.io.OnEvent(namespace, event, wrap(event, fn))
}

// wrap rate limits the connection and decodes the payload before fn runs.
// Failures are reported to the sender only.
func wrap[T any](event string, fn func(ctx context.Context, c socketio.Conn, msg T) error) func(socketio.Conn, string) {
	op := "socket." + event
	return func(c socketio.Conn, jsonStr string) {
		sess := sessionOf(c)
		if sess != nil && !sess.limiter.Allow() {
			emitError(c, errs.NewConcurrencyConflict(op, "too many requests"))
			return
		}
		var msg T
		if err := json.Unmarshal([]byte(jsonStr), &msg); err != nil {
			emitError(c, errs.NewConstraintViolation(op, "malformed payload"))
			return
		}
		if err := fn(context.Background(), c, msg); err != nil {
			emitError(c, err)
		}
	}
}

type joinRoom struct {
	RoomId   string `json:"roomId"`
	PlayerId string `json:"playerId"`
}

type roomIntent struct {
	RoomId   string `json:"roomId"`
	PlayerId string `json:"playerId"`
}

type payInvoice struct {
	RoomId         string `json:"roomId"`
	PlayerId       string `json:"playerId"`
	AcceptOptional bool   `json:"acceptOptional"`
}

func (s *Server) connect(c socketio.Conn) error {
	c.SetContext(&session{
		id:      uuid.NewV4().String(),
		limiter: rate.NewLimiter(rate.Limit(s.opts.IntentRate), s.opts.IntentBurst),
	})
	log.WithField("conn", c.ID()).Info("connected")
	return nil
}

// joinRoom subscribes the connection to the room and replays its current
// state. Unknown rooms answer joinFailed.
func (s *Server) joinRoom(c socketio.Conn, jsonStr string) {
	var msg joinRoom
	if err := json.Unmarshal([]byte(jsonStr), &msg); err != nil || msg.RoomId == "" {
		emit(c, "joinFailed", map[string]string{"msg": "invalid room"})
		return
	}
	res, err := s.svc.Join(context.Background(), msg.RoomId, msg.PlayerId)
	if err != nil {
		if !errs.Is(err, errs.NotFound) {
			log.WithError(err).WithField("room", msg.RoomId).Error("join failed")
		}
		emit(c, "joinFailed", map[string]string{"msg": "invalid room"})
		return
	}
	if sess := sessionOf(c); sess != nil {
		sess.roomId, sess.playerId = msg.RoomId, msg.PlayerId
	}
	c.Join(msg.RoomId)
	c.Emit("joinSucceed")
	playable := res.IsPlayable
	emit(c, game.EventUpdateGameState, game.GameStateEvent{Fresh: true, GameState: res.Room.State, IsPlayable: &playable})
	emit(c, game.EventRefreshDoubles, game.DoublesEvent{Count: res.Room.DoublesCount})
	emit(c, game.EventShowDices, res.Room.Dice)
}

// Bind routes the session protocol to svc.
func (s *Server) Bind(svc *game.Service) {
	s.svc = svc

	s.io.OnConnect(namespace, s.connect)
	s.io.OnEvent(namespace, "joinRoom", s.joinRoom)

	handle(s, "reportRollDiceResult", func(ctx context.Context, _ socketio.Conn, msg game.Roll) error {
		return svc.RollDice(ctx, msg)
	})
	handle(s, "reportTransaction", func(ctx context.Context, _ socketio.Conn, msg game.Transaction) error {
		return svc.ReportTransaction(ctx, msg)
	})
	handle(s, "requestBasicIncome", func(ctx context.Context, _ socketio.Conn, msg roomIntent) error {
		return svc.RequestBasicIncome(ctx, msg.RoomId)
	})
	handle(s, "jailbreakByMoney", func(ctx context.Context, _ socketio.Conn, msg roomIntent) error {
		return svc.JailbreakByMoney(ctx, msg.RoomId, msg.PlayerId)
	})
	handle(s, "skip", func(ctx context.Context, _ socketio.Conn, msg roomIntent) error {
		return svc.Skip(ctx, msg.RoomId, msg.PlayerId)
	})
	handle(s, "payInvoice", func(ctx context.Context, _ socketio.Conn, msg payInvoice) error {
		return svc.PayInvoice(ctx, msg.RoomId, msg.PlayerId, msg.AcceptOptional)
	})
	handle(s, "ackChance", func(ctx context.Context, _ socketio.Conn, msg roomIntent) error {
		return svc.AckChance(ctx, msg.RoomId, msg.PlayerId)
	})

	s.io.OnError(namespace, func(c socketio.Conn, e error) {
		log.WithError(e).Warn("socket error")
	})

	s.io.OnDisconnect(namespace, func(c socketio.Conn, reason string) {
		log.WithFields(log.Fields{"conn": c.ID(), "reason": reason}).Info("disconnected")
		if sess := sessionOf(c); sess != nil && sess.roomId != "" {
			svc.Disconnected(context.Background(), sess.roomId, sess.playerId)
		}
		c.LeaveAll()
	})
}

func (s *Server) Serve() error {
	return s.io.Serve()
}

func (s *Server) Close() error {
	return s.io.Close()
}

// Handler mounts the socket.io endpoint behind CORS.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.opts.Origins,
		AllowCredentials: true,
	})
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", s.io)
	return c.Handler(mux)
}
