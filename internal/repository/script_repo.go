package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creatorlens/creatorlens-go/internal/apperr"
	"github.com/creatorlens/creatorlens-go/internal/model"
)

type ScriptRepo struct {
	pool *pgxpool.Pool
}

func NewScriptRepo(pool *pgxpool.Pool) *ScriptRepo {
	return &ScriptRepo{pool: pool}
}

// Insert stores a new saved script and returns it with its assigned ID.
func (r *ScriptRepo) Insert(ctx context.Context, s model.SavedScript) (*model.SavedScript, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO saved_scripts (owner_user_id, video_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		s.OwnerUserID, s.VideoID, s.Content).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByOwner returns a user's saved scripts, newest first.
func (r *ScriptRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]model.SavedScript, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_user_id, video_id, content, created_at, updated_at
		FROM saved_scripts
		WHERE owner_user_id = $1
		ORDER BY created_at DESC`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scripts []model.SavedScript
	for rows.Next() {
		var s model.SavedScript
		if err := rows.Scan(&s.ID, &s.OwnerUserID, &s.VideoID, &s.Content, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		scripts = append(scripts, s)
	}
	return scripts, rows.Err()
}

// Find returns one saved script scoped to its owner.
func (r *ScriptRepo) Find(ctx context.Context, ownerUserID string, id int64) (*model.SavedScript, error) {
	var s model.SavedScript
	err := r.pool.QueryRow(ctx, `
		SELECT id, owner_user_id, video_id, content, created_at, updated_at
		FROM saved_scripts
		WHERE owner_user_id = $1 AND id = $2`, ownerUserID, id).
		Scan(&s.ID, &s.OwnerUserID, &s.VideoID, &s.Content, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &apperr.NotFoundError{Resource: "script", Query: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateContent replaces a script's text (explicit edit, auto-save path).
func (r *ScriptRepo) UpdateContent(ctx context.Context, ownerUserID string, id int64, content string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE saved_scripts
		SET content = $1, updated_at = NOW()
		WHERE owner_user_id = $2 AND id = $3`, content, ownerUserID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &apperr.NotFoundError{Resource: "script", Query: strconv.FormatInt(id, 10)}
	}
	return nil
}

// Delete removes one saved script. Channel and video deletions never
// cascade here.
func (r *ScriptRepo) Delete(ctx context.Context, ownerUserID string, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM saved_scripts WHERE owner_user_id = $1 AND id = $2`, ownerUserID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &apperr.NotFoundError{Resource: "script", Query: strconv.FormatInt(id, 10)}
	}
	return nil
}
