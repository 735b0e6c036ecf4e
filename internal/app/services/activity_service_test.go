package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerem/schoolhub/internal/app/models"
)

func TestActivityRecord(t *testing.T) {
	store := &memActivityStore{}
	feed := &memBroadcaster{}
	svc := NewActivityService(store, feed, fixedNow)

	svc.Record(context.Background(), "fee", "Fee payment recorded for Amina Yusuf (January)")

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, "fee", entry.Kind)
	assert.Equal(t, testNow, entry.CreatedAt)

	// The same entry, JSON-encoded, goes out on the live feed.
	require.Len(t, feed.payloads, 1)
	var decoded models.ActivityEntry
	require.NoError(t, json.Unmarshal(feed.payloads[0], &decoded))
	assert.Equal(t, entry.Message, decoded.Message)
	assert.Equal(t, "fee", decoded.Kind)
}

func TestActivityRecordNilFeed(t *testing.T) {
	store := &memActivityStore{}
	svc := NewActivityService(store, nil, fixedNow)

	svc.Record(context.Background(), "class", "Class Grade 7 created")
	require.Len(t, store.entries, 1)
}

func TestActivityRecordStoreFailure(t *testing.T) {
	store := &memActivityStore{failing: true}
	feed := &memBroadcaster{}
	svc := NewActivityService(store, feed, fixedNow)

	// A failed append is swallowed and nothing reaches the feed.
	svc.Record(context.Background(), "fee", "doomed")
	assert.Empty(t, store.entries)
	assert.Empty(t, feed.payloads)
}

func TestActivityLatest(t *testing.T) {
	store := &memActivityStore{}
	svc := NewActivityService(store, nil, fixedNow)

	svc.Record(context.Background(), "fee", "first")
	svc.Record(context.Background(), "salary", "second")
	svc.Record(context.Background(), "class", "third")

	latest, err := svc.Latest(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "third", latest[0].Message)
	assert.Equal(t, "second", latest[1].Message)
}
