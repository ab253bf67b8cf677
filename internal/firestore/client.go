// Package firestore publishes archived playlists to a Firestore collection.
package firestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"orbplaylist/internal/model"
)

const batchSize = 250 // Stay well under Firestore's 500 operation limit

// Client wraps the Firestore client for playlist operations.
type Client struct {
	client     *firestore.Client
	collection string
}

// New creates a new Firestore client.
func New(ctx context.Context, projectID, collection string) (*Client, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &Client{
		client:     client,
		collection: collection,
	}, nil
}

// Close closes the Firestore client.
func (c *Client) Close() error {
	return c.client.Close()
}

// ReplaceSongsForDay replaces all song documents for a (station, date) pair.
// It deletes any existing documents for that day, then writes the new ones
// in batches.
func (c *Client) ReplaceSongsForDay(ctx context.Context, station, date string, songs []model.SongEntry, batchID string) error {
	coll := c.client.Collection(c.collection)

	if err := c.deleteSongsForDay(ctx, station, date); err != nil {
		return fmt.Errorf("deleting existing songs: %w", err)
	}

	for i := 0; i < len(songs); i += batchSize {
		end := i + batchSize
		if end > len(songs) {
			end = len(songs)
		}
		batch := c.client.Batch()

		for _, song := range songs[i:end] {
			doc := coll.Doc(docID(station, date, song))
			batch.Set(doc, songToMap(station, date, song, batchID))
		}

		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("committing batch: %w", err)
		}
	}

	return nil
}

func (c *Client) deleteSongsForDay(ctx context.Context, station, date string) error {
	query := c.client.Collection(c.collection).
		Where("station", "==", station).
		Where("date", "==", date)

	for {
		iter := query.Limit(batchSize).Documents(ctx)
		batch := c.client.Batch()
		numDeleted := 0

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return fmt.Errorf("iterating documents: %w", err)
			}
			batch.Delete(doc.Ref)
			numDeleted++
		}

		if numDeleted == 0 {
			return nil
		}

		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("committing delete batch: %w", err)
		}

		if numDeleted < batchSize {
			return nil
		}
	}
}

// docID creates a stable document ID from the song's identifying fields.
func docID(station, date string, song model.SongEntry) string {
	data := fmt.Sprintf("%s|%s|%s|%s", station, date, song.Time, song.Title)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:16])
}

func songToMap(station, date string, song model.SongEntry, batchID string) map[string]interface{} {
	return map[string]interface{}{
		"station":  station,
		"date":     date,
		"time":     song.Time,
		"title":    song.Title,
		"batch_id": batchID,
	}
}
