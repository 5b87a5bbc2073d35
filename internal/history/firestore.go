package history

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const (
	firestoreCollection = "translations"
	// Firestore batch limit is 500.
	firestoreBatchSize = 500
)

// FirestoreStore persists translation records in a Firestore collection.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(ctx context.Context, projectID string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

type firestoreDoc struct {
	Original   string    `firestore:"original"`
	Translated string    `firestore:"translated"`
	Timestamp  time.Time `firestore:"timestamp,serverTimestamp"`
}

func (s *FirestoreStore) Append(ctx context.Context, original, translated string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("firestore store is not initialized")
	}

	_, _, err := s.client.Collection(firestoreCollection).Add(ctx, firestoreDoc{
		Original:   original,
		Translated: translated,
	})
	if err != nil {
		return fmt.Errorf("add translation document: %w", err)
	}
	return nil
}

func (s *FirestoreStore) ListAll(ctx context.Context) ([]Record, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("firestore store is not initialized")
	}

	iter := s.client.Collection(firestoreCollection).
		OrderBy("timestamp", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	records := make([]Record, 0, 32)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate translation documents: %w", err)
		}

		var data firestoreDoc
		if err := doc.DataTo(&data); err != nil {
			continue
		}
		if data.Original == "" || data.Translated == "" {
			continue
		}
		records = append(records, Record{
			ID:         doc.Ref.ID,
			Original:   data.Original,
			Translated: data.Translated,
			CreatedAt:  data.Timestamp,
		})
	}

	return records, nil
}

func (s *FirestoreStore) ClearAll(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("firestore store is not initialized")
	}

	// Snapshot document refs first, then delete them in write batches.
	iter := s.client.Collection(firestoreCollection).Select().Documents(ctx)
	defer iter.Stop()

	refs := make([]*firestore.DocumentRef, 0, 32)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("snapshot translation documents: %w", err)
		}
		refs = append(refs, doc.Ref)
	}
	if len(refs) == 0 {
		return nil
	}

	batch := s.client.Batch()
	pending := 0
	for _, ref := range refs {
		batch.Delete(ref)
		pending++
		if pending == firestoreBatchSize {
			if _, err := batch.Commit(ctx); err != nil {
				return fmt.Errorf("commit delete batch: %w", err)
			}
			batch = s.client.Batch()
			pending = 0
		}
	}
	if pending > 0 {
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("commit delete batch: %w", err)
		}
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
