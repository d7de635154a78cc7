package repository

import (
	"context"

	"github.com/sakif/content-remix/internal/model"
)

// TweetRepository is the persistence capability the service layer depends
// on. There is deliberately no Update — saved tweets are immutable.
type TweetRepository interface {
	// Save inserts the tweet and fills in its store-assigned ID and CreatedAt.
	Save(ctx context.Context, tweet *model.Tweet) error
	// List returns every saved tweet, newest first (created_at DESC, then id DESC).
	List(ctx context.Context) ([]model.Tweet, error)
	// Delete removes the tweet with the given id, returning apperror.ErrNotFound
	// if no such row exists.
	Delete(ctx context.Context, id int64) error
}
