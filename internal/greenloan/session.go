// internal/greenloan/session.go
package greenloan

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// State names the pipeline stages a session moves through.
type State string

const (
	StateIdle              State = "idle"
	StateUploading         State = "uploading"
	StateExtracting        State = "extracting"
	StateExtractionPending State = "extraction_pending"
	StateExtractionDone    State = "extraction_done"
	StateAnalyzing         State = "analyzing"
	StateRendered          State = "rendered"
)

// Session is one payslip upload's lifecycle. The token is the fence
// against stale responses: only the newest upload's token is current,
// and results arriving under an older token are discarded.
type Session struct {
	Token            string    `json:"token"`
	State            State     `json:"state"`
	FileName         string    `json:"file_name"`
	ExtractedText    string    `json:"extracted_text"`
	ExtractionDone   bool      `json:"extraction_done"`
	ExtractionFailed bool      `json:"extraction_failed"`
	CreatedAt        time.Time `json:"created_at"`

	// image bytes stay in process memory only
	image []byte
}

// Image returns the uploaded payslip bytes.
func (s *Session) Image() []byte {
	return s.image
}

// SessionManager owns the live sessions. State lives in memory; a JSON
// snapshot is mirrored into Redis so the gated poll variant can be
// served by any replica.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	current  string

	ttl    time.Duration
	redis  *redis.Client
	logger logger.Logger
}

func NewSessionManager(config *Config, redisClient *redis.Client, log logger.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		ttl:      config.SessionTTL,
		redis:    redisClient,
		logger:   log.WithFields(map[string]interface{}{"component": "payslip-sessions"}),
	}
}

func sessionKey(token string) string {
	return "greenloan:session:" + token
}

// Begin starts a new session for a freshly selected file. Any previous
// session is dropped: a new selection discards the old upload and its
// extracted text.
func (m *SessionManager) Begin(ctx context.Context, filename string, image []byte) *Session {
	session := &Session{
		Token:     uuid.New().String(),
		State:     StateUploading,
		FileName:  filename,
		CreatedAt: time.Now().UTC(),
		image:     image,
	}

	m.mu.Lock()
	if m.current != "" {
		delete(m.sessions, m.current)
	}
	m.sessions[session.Token] = session
	m.current = session.Token
	m.mu.Unlock()

	m.mirror(ctx, session)
	return session
}

// Get returns a snapshot of the session for a token. Mutations go
// through Update; handing out a copy keeps readers off the struct the
// extraction goroutine writes to. The image bytes stay shared.
func (m *SessionManager) Get(token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok {
		return nil, stderrors.NewSessionNotFoundError(token)
	}
	snapshot := *session
	return &snapshot, nil
}

// IsCurrent reports whether a token still names the active upload.
func (m *SessionManager) IsCurrent(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current == token
}

// Update applies a mutation under the manager lock and refuses it when
// the token has been superseded in the meantime.
func (m *SessionManager) Update(ctx context.Context, token string, apply func(*Session)) error {
	m.mu.Lock()
	session, ok := m.sessions[token]
	if !ok {
		m.mu.Unlock()
		return stderrors.NewSessionNotFoundError(token)
	}
	if m.current != token {
		m.mu.Unlock()
		return stderrors.NewSessionSupersededError(token)
	}
	apply(session)
	snapshot := *session
	m.mu.Unlock()

	m.mirror(ctx, &snapshot)
	return nil
}

func (m *SessionManager) mirror(ctx context.Context, session *Session) {
	if m.redis == nil {
		return
	}
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	if err := m.redis.Set(ctx, sessionKey(session.Token), data, m.ttl).Err(); err != nil {
		m.logger.Warn("session mirror write failed", map[string]interface{}{
			"token": session.Token,
			"error": err.Error(),
		})
	}
}
