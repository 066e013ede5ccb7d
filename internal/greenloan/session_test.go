// internal/greenloan/session_test.go
package greenloan

import (
	"context"
	"testing"
	"time"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSessionManager(t *testing.T) *SessionManager {
	t.Helper()
	return NewSessionManager(LoadConfig(), nil, logger.NewNoOpLogger())
}

func TestSessionManager_Begin(t *testing.T) {
	m := createTestSessionManager(t)

	session := m.Begin(context.Background(), "payslip.png", []byte{1, 2, 3})
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, StateUploading, session.State)
	assert.Equal(t, "payslip.png", session.FileName)
	assert.Equal(t, []byte{1, 2, 3}, session.Image())
	assert.True(t, m.IsCurrent(session.Token))
}

func TestSessionManager_NewUploadSupersedesPrevious(t *testing.T) {
	m := createTestSessionManager(t)
	ctx := context.Background()

	first := m.Begin(ctx, "one.png", []byte{1})
	second := m.Begin(ctx, "two.png", []byte{2})

	assert.False(t, m.IsCurrent(first.Token))
	assert.True(t, m.IsCurrent(second.Token))

	// the superseded session is gone entirely
	_, err := m.Get(first.Token)
	require.Error(t, err)
	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeSessionNotFound, stdErr.Code)
}

func TestSessionManager_Update(t *testing.T) {
	m := createTestSessionManager(t)
	ctx := context.Background()

	session := m.Begin(ctx, "payslip.png", []byte{1})
	err := m.Update(ctx, session.Token, func(s *Session) {
		s.ExtractedText = "Gross Pay: MUR 50,000"
		s.ExtractionDone = true
		s.State = StateExtractionDone
	})
	require.NoError(t, err)

	got, err := m.Get(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "Gross Pay: MUR 50,000", got.ExtractedText)
	assert.True(t, got.ExtractionDone)
}

func TestSessionManager_GetReturnsSnapshot(t *testing.T) {
	m := createTestSessionManager(t)
	ctx := context.Background()

	session := m.Begin(ctx, "payslip.png", []byte{1, 2, 3})

	before, err := m.Get(session.Token)
	require.NoError(t, err)
	assert.False(t, before.ExtractionDone)

	err = m.Update(ctx, session.Token, func(s *Session) {
		s.ExtractedText = "Gross Pay: MUR 50,000"
		s.ExtractionDone = true
	})
	require.NoError(t, err)

	// the earlier snapshot is detached from the live session
	assert.False(t, before.ExtractionDone)
	assert.Empty(t, before.ExtractedText)

	after, err := m.Get(session.Token)
	require.NoError(t, err)
	assert.True(t, after.ExtractionDone)
	assert.Equal(t, []byte{1, 2, 3}, after.Image())
}

func TestSessionManager_UpdateRejectsSuperseded(t *testing.T) {
	m := createTestSessionManager(t)
	ctx := context.Background()

	first := m.Begin(ctx, "one.png", []byte{1})
	second := m.Begin(ctx, "two.png", []byte{2})

	// late extraction result for the first upload must be dropped;
	// Get already fails because Begin evicted it
	err := m.Update(ctx, first.Token, func(s *Session) { s.ExtractionDone = true })
	require.Error(t, err)

	err = m.Update(ctx, second.Token, func(s *Session) { s.ExtractionDone = true })
	require.NoError(t, err)
}

func TestSessionManager_RedisMirror(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := LoadConfig()
	cfg.SessionTTL = time.Minute
	m := NewSessionManager(cfg, client, logger.NewNoOpLogger())

	session := m.Begin(context.Background(), "payslip.png", []byte{1})

	mirrored, err := client.Get(context.Background(), sessionKey(session.Token)).Result()
	require.NoError(t, err)
	assert.Contains(t, mirrored, session.Token)
	assert.Contains(t, mirrored, `"uploading"`)

	// the raw image bytes never reach the mirror
	assert.NotContains(t, mirrored, `"image"`)
}
