// Package sensors ingests ambient device input over a websocket: motion
// samples for shake detection, speech-capture frames, and the listen toggle.
// Each connection owns its own detector and capture session.
package sensors

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/aadinq/catty/backend/internal/config"
	"github.com/aadinq/catty/backend/internal/sensor"
	conversation "github.com/aadinq/catty/backend/internal/service/conversation"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The widget is served from arbitrary origins, same policy as CORS.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientFrame is the envelope the frontend sends.
type clientFrame struct {
	Type string  `json:"type"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	Z    float64 `json:"z,omitempty"`
	Text string  `json:"text,omitempty"`
	Err  string  `json:"error,omitempty"`
}

// serverFrame is the envelope pushed back to the frontend.
type serverFrame struct {
	Type      string `json:"type"`
	Listening bool   `json:"listening,omitempty"`
	Triggered bool   `json:"triggered,omitempty"`
}

// Handler wires sensor ingest into the conversation orchestrator.
type Handler struct {
	conv *conversation.Service
	cfg  config.SensorConfig
}

// New creates the sensor handler.
func New(conv *conversation.Service, cfg config.SensorConfig) *Handler {
	return &Handler{conv: conv, cfg: cfg}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sensors/ws", h.handleWS)
}

func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[sensors] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := newSession(h.conv, h.cfg, conn)
	defer session.close()

	log.Printf("[sensors] connection opened from %s", r.RemoteAddr)
	session.readLoop(r.Context())
	log.Printf("[sensors] connection closed from %s", r.RemoteAddr)
}

// session holds the per-connection detector and speech capture.
type session struct {
	conv    *conversation.Service
	conn    *websocket.Conn
	shake   *sensor.ShakeDetector
	speech  *sensor.SpeechCapture
	rec     *wsRecognizer
	sendErr error
}

func newSession(conv *conversation.Service, cfg config.SensorConfig, conn *websocket.Conn) *session {
	s := &session{
		conv: conv,
		conn: conn,
		shake: sensor.NewShakeDetector(
			cfg.ShakeThreshold,
			time.Duration(cfg.ShakeCooldownMS)*time.Millisecond,
		),
		rec: &wsRecognizer{},
	}
	s.speech = sensor.NewSpeechCapture(s.rec, conv.SetDraft, func(listening bool) {
		conv.SetListening(listening)
		s.push(serverFrame{Type: "listening", Listening: listening})
	})
	return s
}

func (s *session) readLoop(ctx context.Context) {
	for {
		var frame clientFrame
		if err := s.conn.ReadJSON(&frame); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[sensors] read failed: %v", err)
			}
			return
		}

		switch frame.Type {
		case "motion":
			s.handleMotion(ctx, sensor.Motion{X: frame.X, Y: frame.Y, Z: frame.Z})
		case "listen_toggle":
			s.speech.Toggle()
		case "speech_final":
			s.rec.deliverResult(frame.Text)
		case "speech_error":
			s.rec.deliverError(errors.New(frame.Err))
		default:
			log.Printf("[sensors] ignoring unknown frame type %q", frame.Type)
		}
	}
}

// handleMotion feeds the detector; a completed shake synthesizes the canned
// outbound message through the normal send pipeline. Sends while a response
// is in flight are dropped by the orchestrator's guard.
func (s *session) handleMotion(ctx context.Context, sample sensor.Motion) {
	if !s.shake.Feed(sample) {
		return
	}

	_, err := s.conv.Send(ctx, conversation.ShakeText)
	if errors.Is(err, conversation.ErrBusy) {
		log.Printf("[sensors] shake dropped while response in flight")
		return
	}
	if err != nil {
		log.Printf("[sensors] shake send failed: %v", err)
		return
	}
	s.push(serverFrame{Type: "shake", Triggered: true})
}

func (s *session) push(frame serverFrame) {
	if s.sendErr != nil {
		return
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.sendErr = err
	}
}

func (s *session) close() {
	if s.speech.Listening() {
		s.speech.Toggle()
	}
}

// wsRecognizer adapts the websocket frames to the sensor.Recognizer
// capability interface: the browser performs the actual recognition and
// reports the final transcript back over the connection.
type wsRecognizer struct {
	onResult func(string)
	onError  func(error)
}

func (r *wsRecognizer) Start(onResult func(string), onError func(error)) error {
	r.onResult = onResult
	r.onError = onError
	return nil
}

func (r *wsRecognizer) Stop() {
	r.onResult = nil
	r.onError = nil
}

func (r *wsRecognizer) deliverResult(text string) {
	if r.onResult != nil {
		r.onResult(text)
	}
}

func (r *wsRecognizer) deliverError(err error) {
	if r.onError != nil {
		r.onError(err)
	}
}
