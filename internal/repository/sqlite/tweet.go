package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sakif/content-remix/internal/apperror"
	"github.com/sakif/content-remix/internal/model"
	"github.com/sakif/content-remix/internal/repository"
)

// Compile-time check that *DB implements repository.TweetRepository.
// `var _ X = (*Y)(nil)` assigns a nil *Y to a variable of interface type X;
// if *Y is missing a method, the compiler errors here instead of at some
// distant call site.
var _ repository.TweetRepository = (*DB)(nil)

// Save inserts a new tweet and fills in the store-assigned ID and CreatedAt.
//
// We take a pointer receiver on the model so the caller's struct carries the
// assigned id afterwards. LastInsertId works with SQLite's AUTOINCREMENT:
// the driver returns the rowid chosen for the new row.
func (db *DB) Save(ctx context.Context, tweet *model.Tweet) error {
	tweet.CreatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO tweets (content, tweet_type, created_at)
		 VALUES (?, ?, ?)`,
		tweet.Content,
		tweet.TweetType,
		tweet.CreatedAt,
	)
	if err != nil {
		return apperror.Storage("saving tweet", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperror.Storage("reading saved tweet id", err)
	}
	tweet.ID = id

	return nil
}

// List returns every saved tweet, newest first. Ties on created_at (two
// saves in the same clock tick) fall back to id DESC, which is insertion
// order because ids only ever grow.
func (db *DB) List(ctx context.Context) ([]model.Tweet, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, content, tweet_type, created_at
		 FROM tweets
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, apperror.Storage("listing tweets", err)
	}
	// sql.Rows holds a connection from the pool — always close it, or the
	// pool eventually runs dry and every request hangs.
	defer rows.Close()

	tweets := make([]model.Tweet, 0, 16)

	for rows.Next() {
		var t model.Tweet
		if err := rows.Scan(&t.ID, &t.Content, &t.TweetType, &t.CreatedAt); err != nil {
			return nil, apperror.Storage("scanning tweet row", err)
		}
		tweets = append(tweets, t)
	}

	// rows.Err catches failures that happened during iteration (e.g. the
	// connection dropping mid-read), which Next() silently swallows.
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("iterating tweets", err)
	}

	return tweets, nil
}

// Delete removes a tweet by id. "Delete if present" is a single atomic
// statement, so two concurrent deletes of the same id race safely: one sees
// RowsAffected 1, the other 0 and gets NotFound.
func (db *DB) Delete(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM tweets WHERE id = ?`,
		id,
	)
	if err != nil {
		return apperror.Storage(fmt.Sprintf("deleting tweet %d", id), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.Storage("checking rows affected", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("tweet", strconv.FormatInt(id, 10))
	}

	return nil
}
