// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Tweet represents a saved short text snippet (≤280 characters).
//
// The ID is assigned by the store (SQLite AUTOINCREMENT), so ids are never
// reused even after a row is deleted. Tweets are immutable once saved —
// there is no update operation, only save and delete.
type Tweet struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	TweetType string    `json:"tweetType"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultTweetType is used when the caller doesn't supply a category.
const DefaultTweetType = "unique"
