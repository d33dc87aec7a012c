package service

import (
	"context"
	"strings"
	"time"

	"github.com/creatorlens/creatorlens-go/internal/apperr"
	"github.com/creatorlens/creatorlens-go/internal/model"
	"github.com/creatorlens/creatorlens-go/pkg/scripttmpl"
)

// MaxScriptLen caps stored script content.
const MaxScriptLen = 20000

// ScriptService generates template-based script drafts and manages the
// user's saved copies. Saved scripts live independently of channels and
// videos.
type ScriptService struct {
	scripts scriptStore
	seed    func() int64
}

func NewScriptService(scripts scriptStore) *ScriptService {
	return &ScriptService{
		scripts: scripts,
		seed:    func() int64 { return time.Now().UnixNano() },
	}
}

// Generate renders a script from the template set and persists it.
func (s *ScriptService) Generate(ctx context.Context, ownerUserID, videoID string, videoURLs []string) (*model.SavedScript, error) {
	content := scripttmpl.Generate(s.seed(), videoURLs)
	return s.scripts.Insert(ctx, model.SavedScript{
		OwnerUserID: ownerUserID,
		VideoID:     videoID,
		Content:     content,
	})
}

// Get returns one saved script, owner-scoped.
func (s *ScriptService) Get(ctx context.Context, ownerUserID string, id int64) (*model.SavedScript, error) {
	return s.scripts.Find(ctx, ownerUserID, id)
}

// List returns the user's saved scripts, newest first.
func (s *ScriptService) List(ctx context.Context, ownerUserID string) ([]model.SavedScript, error) {
	return s.scripts.ListByOwner(ctx, ownerUserID)
}

// Update replaces a script's content (the client debounces auto-saves; the
// server treats every update as an explicit edit).
func (s *ScriptService) Update(ctx context.Context, ownerUserID string, id int64, content string) error {
	if strings.TrimSpace(content) == "" {
		return &apperr.ValidationError{Field: "content", Reason: "must not be blank"}
	}
	if len(content) > MaxScriptLen {
		return &apperr.ValidationError{Field: "content", Reason: "too long"}
	}
	return s.scripts.UpdateContent(ctx, ownerUserID, id, content)
}

// Delete removes one saved script.
func (s *ScriptService) Delete(ctx context.Context, ownerUserID string, id int64) error {
	return s.scripts.Delete(ctx, ownerUserID, id)
}
