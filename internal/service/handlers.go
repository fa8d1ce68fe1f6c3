package service

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/conduit-lang/jsscan/compiler/errors"
	"github.com/conduit-lang/jsscan/compiler/scanner"
	"github.com/conduit-lang/jsscan/internal/audit"
	"github.com/conduit-lang/jsscan/internal/cache"
	"github.com/conduit-lang/jsscan/internal/format"
	"github.com/conduit-lang/jsscan/internal/wsbus"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenizeRequest is the POST /v1/tokenize request body.
type TokenizeRequest struct {
	Source string `json:"source"`
}

// TokenizeResponse is the POST /v1/tokenize response body.
type TokenizeResponse struct {
	RequestID string                `json:"request_id"`
	Tokens    []format.TokenRecord  `json:"tokens"`
	Cached    bool                  `json:"cached"`
	Error     *errors.CompilerError `json:"error,omitempty"`
}

// handleTokenize scans the posted source, serving a cached result when
// available, recording an audit row, and broadcasting the result to any
// GET /v1/stream subscribers.
func (s *Service) handleTokenize(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	start := time.Now()

	var req TokenizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	key := cache.KeyForSource(req.Source)
	ctx := r.Context()

	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key); err == nil {
			var resp TokenizeResponse
			if json.Unmarshal(cached, &resp) == nil {
				resp.RequestID = requestID
				resp.Cached = true
				s.writeJSON(w, http.StatusOK, resp)
				return
			}
		}
	}

	items, scanErr := scanner.Tokenize(req.Source)
	resp := TokenizeResponse{RequestID: requestID, Tokens: format.ToRecords(req.Source, items)}

	errored := false
	errorCode := ""
	if scanErr != nil {
		errored = true
		if ce, ok := scanErr.(errors.CompilerError); ok {
			errorCode = ce.Code
			resp.Error = &ce
		} else {
			resp.Error = &errors.CompilerError{Message: scanErr.Error()}
		}
	}

	status := http.StatusOK
	if errored {
		status = http.StatusUnprocessableEntity
	} else if s.Cache != nil {
		if body, err := json.Marshal(resp); err == nil {
			_ = s.Cache.Set(ctx, key, body, 0)
		}
	}

	if s.Audit != nil {
		rec := audit.NewRecord(requestID, key, len(req.Source), len(resp.Tokens), errored, errorCode,
			float64(time.Since(start).Microseconds())/1000.0, start)
		if err := s.Audit.Record(ctx, rec); err != nil {
			s.Logger.Warn("audit write failed", zap.Error(err))
		}
	}

	if s.Hub != nil {
		if body, err := json.Marshal(resp); err == nil {
			s.Hub.Broadcast(body)
		}
	}

	s.writeJSON(w, status, resp)
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("failed writing JSON response", zap.Error(err))
	}
}

// handleHealth reports basic liveness.
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// streamToken is one token pushed to a GET /v1/stream client, mirroring
// TokenRecord but sent one message at a time as the scanner produces it.
type streamToken struct {
	Type  string `json:"type"`
	Kind  string `json:"kind,omitempty"`
	Text  string `json:"text,omitempty"`
	Start int    `json:"start,omitempty"`
	End   int    `json:"end,omitempty"`
	Error string `json:"error,omitempty"`
}

// handleStream upgrades the connection to a WebSocket. Each inbound text
// message is treated as a full source text: the scanner's pull iterator
// (Scanner.Next) is driven one token at a time, and every token is written
// back as its own message as soon as it is produced, rather than batched
// into a single response — the same pull-iterator semantics the scanner
// exposes in-process, realized over the wire. The connection is also
// registered with the broadcast hub so it receives pushes from the file
// watcher and other tokenize requests.
func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	if s.Hub == nil {
		http.Error(w, "streaming is disabled", http.StatusNotImplemented)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := wsbus.NewClient(uuid.New().String(), "", conn, s.Hub, s.Logger)
	s.Hub.Register(client)
	go client.WritePump()

	defer func() {
		s.Hub.Unregister(client)
		conn.Close()
	}()

	for {
		_, body, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.streamTokenize(client, string(body))
	}
}

// streamTokenize drains source one token at a time, enqueuing each as its
// own message on client, then a terminal "done" (or "error") message.
func (s *Service) streamTokenize(client *wsbus.Client, source string) {
	sc := scanner.New(source)
	for {
		item, ok, err := sc.Next()
		if err != nil {
			s.enqueueStreamToken(client, streamToken{Type: "error", Error: err.Error()})
			return
		}
		if !ok || item.Token.IsEoF() {
			s.enqueueStreamToken(client, streamToken{Type: "done"})
			return
		}
		s.enqueueStreamToken(client, streamToken{
			Type:  "token",
			Kind:  item.Token.Kind.String(),
			Text:  format.DisplayText(item.Token, source, item.Span),
			Start: item.Span.Start,
			End:   item.Span.End,
		})
	}
}

func (s *Service) enqueueStreamToken(client *wsbus.Client, tok streamToken) {
	body, err := json.Marshal(tok)
	if err != nil {
		s.Logger.Warn("failed to marshal stream token", zap.Error(err))
		return
	}
	client.Enqueue(body)
}
