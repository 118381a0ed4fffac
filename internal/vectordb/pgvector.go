package vectordb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"github.com/ziadkadry99/ragserver/internal/embeddings"
	"github.com/ziadkadry99/ragserver/internal/provider"
)

// PGVectorStore implements Store against a Postgres table with a pgvector
// embedding column. The expected schema is
// (id text, content text, title text, url text, metadata jsonb, embedding vector).
type PGVectorStore struct {
	pool     *pgxpool.Pool
	embedder embeddings.Embedder
	table    string
}

// NewPGVectorStore builds a lazily-connecting pool for the given table. No
// round trip happens until the store is used.
func NewPGVectorStore(connString string, embedder embeddings.Embedder, table string) (*PGVectorStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing pgvector conn string: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("creating pgvector pool: %w", err)
	}

	return &PGVectorStore{pool: pool, embedder: embedder, table: table}, nil
}

func (s *PGVectorStore) Name() string { return string(provider.VectorStorePGVector) }

// Close releases the connection pool.
func (s *PGVectorStore) Close() { s.pool.Close() }

func (s *PGVectorStore) SimilaritySearch(ctx context.Context, query string, k int, filter map[string]string) ([]SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, provider.NewError(provider.KindAPIGeneric, s.Name(), "similarity search",
			fmt.Errorf("embedder returned no vector for query"))
	}

	ident := pgx.Identifier{s.table}.Sanitize()
	sql := fmt.Sprintf(
		`SELECT id, content, title, url, metadata, embedding <=> $1 AS distance FROM %s`, ident)
	args := []any{pgvector.NewVector(vectors[0])}

	if len(filter) > 0 {
		filterJSON, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("marshalling filter: %w", err)
		}
		sql += ` WHERE metadata @> $2`
		args = append(args, filterJSON)
	}
	sql += fmt.Sprintf(` ORDER BY distance LIMIT %d`, k)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, s.mapError("similarity search", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			doc      Document
			rawMeta  []byte
			distance float64
		)
		if err := rows.Scan(&doc.ID, &doc.Content, &doc.Title, &doc.URL, &rawMeta, &distance); err != nil {
			return nil, s.mapError("similarity search", err)
		}
		if len(rawMeta) > 0 {
			if err := json.Unmarshal(rawMeta, &doc.Metadata); err != nil {
				return nil, provider.NewError(provider.KindAPIGeneric, s.Name(), "similarity search",
					fmt.Errorf("unmarshalling document metadata: %w", err))
			}
		}
		results = append(results, SearchResult{
			Document:   doc,
			Similarity: float32(1 - distance),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError("similarity search", err)
	}

	return results, nil
}

func (s *PGVectorStore) CountDocuments(ctx context.Context) (int, error) {
	ident := pgx.Identifier{s.table}.Sanitize()

	var count int
	err := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, ident)).Scan(&count)
	if err != nil {
		return 0, s.mapError("count documents", err)
	}
	return count, nil
}

func (s *PGVectorStore) CheckSetting(ctx context.Context) (*provider.SettingStatus, error) {
	count, err := s.CountDocuments(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.SimilaritySearch(ctx, "what is a vector store?", 1, nil); err != nil {
		return nil, err
	}
	return &provider.SettingStatus{
		Valid: true,
		Metadata: []provider.Metadata{
			{Code: provider.MetadataVectorStoreDocumentCount, Value: count},
		},
	}, nil
}

// mapError translates pgx failures into the provider taxonomy using the
// SQLSTATE class where one is available.
func (s *PGVectorStore) mapError(request string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "28P01", "28000": // invalid_password, invalid_authorization_specification
			return provider.NewError(provider.KindAuthentication, s.Name(), request, err)
		case "42P01": // undefined_table
			return provider.NewError(provider.KindIndexNotFound, s.Name(), request, err)
		case "3D000": // invalid_catalog_name
			return provider.NewError(provider.KindResourceNotFound, s.Name(), request, err)
		default:
			return provider.NewError(provider.KindBadRequest, s.Name(), request, err)
		}
	}
	return provider.MapTransportError(s.Name(), request, err)
}
