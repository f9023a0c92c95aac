/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package retrieval

import (
	"context"
	"errors"
	"fmt"

	chromago "github.com/amikos-tech/chroma-go"
	"github.com/amikos-tech/chroma-go/pkg/embeddings/openai"
	"github.com/amikos-tech/chroma-go/types"
	"github.com/chainguard-dev/clog"
)

// ChromaConfig configures the connection to a Chroma store whose
// fragments carry a "category" metadata key.
type ChromaConfig struct {
	// BaseURL of the Chroma server, e.g. "http://localhost:8000".
	BaseURL string
	// Collection holding the ingested reference fragments.
	Collection string
	// OpenAIAPIKey authenticates the embedding function used to embed
	// search queries; it must match the function used at ingestion.
	OpenAIAPIKey string
}

// ChromaIndex implements Index against a Chroma collection.
type ChromaIndex struct {
	collection *chromago.Collection
}

// NewChromaIndex connects to the configured Chroma server and resolves
// the collection. A connection or lookup failure is an *UnavailableError:
// the store is a setup-time dependency, not a transient one.
func NewChromaIndex(ctx context.Context, cfg ChromaConfig) (*ChromaIndex, error) {
	if cfg.BaseURL == "" {
		return nil, unavailable("configuring chroma client", errors.New("base URL is empty"))
	}
	if cfg.Collection == "" {
		return nil, unavailable("configuring chroma client", errors.New("collection name is empty"))
	}

	ef, err := openai.NewOpenAIEmbeddingFunction(cfg.OpenAIAPIKey)
	if err != nil {
		return nil, unavailable("creating embedding function", err)
	}

	client, err := chromago.NewClient(chromago.WithBasePath(cfg.BaseURL))
	if err != nil {
		return nil, unavailable("creating chroma client", err)
	}

	collection, err := client.GetCollection(ctx, cfg.Collection, types.NewV2EmbeddingFunctionAdapter(ef))
	if err != nil {
		return nil, unavailable(fmt.Sprintf("resolving collection %q", cfg.Collection), err)
	}

	return &ChromaIndex{collection: collection}, nil
}

// Search implements Index. Category sets translate to the store's
// {"category": {"$in": [...]}} filter, matching how fragments were
// tagged at ingestion.
func (c *ChromaIndex) Search(ctx context.Context, query string, categories []Category, k int) ([]Fragment, error) {
	result, err := c.collection.Query(ctx, []string{query}, int32(k), categoryFilter(categories), nil, nil)
	if err != nil {
		return nil, unavailable("querying chroma", err)
	}
	if len(result.Documents) == 0 {
		return nil, nil
	}

	fragments := make([]Fragment, 0, len(result.Documents[0]))
	for i, doc := range result.Documents[0] {
		fragment := Fragment{Text: doc}
		if len(result.Metadatas) > 0 && i < len(result.Metadatas[0]) {
			if cat, ok := result.Metadatas[0][i]["category"].(string); ok {
				fragment.Category = cat
			}
		}
		fragments = append(fragments, fragment)
	}

	clog.FromContext(ctx).With("query", query).
		With("categories", categories).
		With("results", len(fragments)).
		Debug("Chroma search complete")
	return fragments, nil
}

// categoryFilter builds the metadata where-filter for a category set.
// An empty set means no filter; multiple categories become an $in clause.
func categoryFilter(categories []Category) map[string]any {
	switch len(categories) {
	case 0:
		return nil
	case 1:
		return map[string]any{"category": categories[0]}
	default:
		return map[string]any{"category": map[string]any{"$in": categories}}
	}
}
