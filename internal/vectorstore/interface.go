package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks quotes-ai/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a single hit from a vector store operation.
// Scan results carry a zero Score since no query vector is involved.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations. It is a
// single stable adapter surface: nearest-neighbor Query plus a full Scan
// fallback for keyword-only reranking, with no runtime feature probing.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Query performs a nearest-neighbor search against the collection.
	Query(ctx context.Context, collection string, vector []float32, limit int) ([]SearchResult, error)

	// Scan returns up to limit points with payloads, without scoring.
	Scan(ctx context.Context, collection string, limit int) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error

	// Count returns the exact number of points in the collection.
	Count(ctx context.Context, collection string) (uint64, error)

	// CollectionExists checks if a collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)

	// EnsureCollection creates the collection with the given vector size if
	// missing, or validates the size of an existing one.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error
}
