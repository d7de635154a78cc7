package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sakif/content-remix/internal/apperror"
	"github.com/sakif/content-remix/internal/model"
	"github.com/sakif/content-remix/internal/repository"
)

// MaxTweetLength is the classic 280-character cap, counted in code points.
const MaxTweetLength = 280

// TweetService handles business logic for saved tweets.
//
// It depends on repository.TweetRepository (an interface), not the concrete
// SQLite type — tests inject an in-memory mock, and the storage engine could
// be swapped without touching this file.
type TweetService struct {
	repo   repository.TweetRepository
	logger *slog.Logger
}

// NewTweetService creates a new TweetService.
func NewTweetService(repo repository.TweetRepository, logger *slog.Logger) *TweetService {
	return &TweetService{
		repo:   repo,
		logger: logger,
	}
}

// Save validates and persists a tweet, returning it with the store-assigned id.
// tweetType is free-form and defaults to "unique" when omitted.
func (s *TweetService) Save(ctx context.Context, content, tweetType string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.ValidationFailed("content", "tweet content is required")
	}
	if utf8.RuneCountInString(content) > MaxTweetLength {
		return nil, apperror.ValidationFailed("content",
			fmt.Sprintf("tweet content must be %d characters or less", MaxTweetLength))
	}

	tweetType = strings.TrimSpace(tweetType)
	if tweetType == "" {
		tweetType = model.DefaultTweetType
	}

	tweet := &model.Tweet{
		Content:   content,
		TweetType: tweetType,
	}

	if err := s.repo.Save(ctx, tweet); err != nil {
		s.logger.Error("failed to save tweet", slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.Info("tweet saved",
		slog.Int64("id", tweet.ID),
		slog.String("tweet_type", tweet.TweetType),
	)

	return tweet, nil
}

// List returns all saved tweets, newest first. No pagination — the store is
// a short personal scratchpad, not a feed.
func (s *TweetService) List(ctx context.Context) ([]model.Tweet, error) {
	tweets, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list tweets", slog.String("error", err.Error()))
		return nil, err
	}
	return tweets, nil
}

// Delete removes a tweet by its id, given as the raw path segment. The id
// must parse as a positive integer; a well-formed id that matches nothing
// yields NotFound (repeat deletes keep yielding NotFound, never a silent
// success).
func (s *TweetService) Delete(ctx context.Context, idStr string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
	if err != nil || id <= 0 {
		return apperror.ValidationFailed("id", "tweet id must be a positive integer")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("tweet deleted", slog.Int64("id", id))
	return nil
}
