package vecindex

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Candidate is one ranked result from a bank query.
type Candidate struct {
	EntryID string
	Score   float64
}

// QueryFilter narrows a bank query before ranking. Empty fields are ignored.
type QueryFilter struct {
	Subject    string
	Chapter    string
	Difficulty string
	Tags       []string
	Topics     []string
}

// QuestionBankIndex is the nearest-neighbor search capability over promoted
// bank entries. Implementations must return candidates ranked best-first.
type QuestionBankIndex interface {
	Upsert(ctx context.Context, entryID string, vector []float32, metadata map[string]any) error
	Search(ctx context.Context, vector []float32, filter QueryFilter, limit int) ([]Candidate, error)
}

type bankIndex struct {
	log       *logrus.Logger
	pc        Client
	indexName string
	indexHost string
	namespace string
}

// NewQuestionBankIndex builds the Pinecone-backed index from viper config
// (vector_index.index_name, vector_index.index_host, vector_index.namespace).
// If the host is not configured it is resolved via describe_index, which is
// fine for local/dev but should be pinned in production.
func NewQuestionBankIndex(log *logrus.Logger, config *viper.Viper, pc Client) (QuestionBankIndex, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if pc == nil {
		return nil, fmt.Errorf("vector index client required")
	}

	indexName := strings.TrimSpace(config.GetString("vector_index.index_name"))
	if indexName == "" {
		return nil, fmt.Errorf("missing vector_index.index_name")
	}

	host := strings.TrimSpace(config.GetString("vector_index.index_host"))
	namespace := strings.TrimSpace(config.GetString("vector_index.namespace"))
	if namespace == "" {
		namespace = "bank"
	}

	if host == "" {
		desc, err := pc.DescribeIndex(context.Background(), indexName)
		if err != nil {
			return nil, fmt.Errorf("vector index describe_index failed: %w", err)
		}
		host = strings.TrimSpace(desc.Host)
		if host == "" {
			return nil, fmt.Errorf("vector index describe_index returned empty host")
		}
		log.Warnf("vector_index.index_host not set; resolved %s via describe_index", host)
	}

	return &bankIndex{
		log:       log,
		pc:        pc,
		indexName: indexName,
		indexHost: host,
		namespace: namespace,
	}, nil
}

func (s *bankIndex) Upsert(ctx context.Context, entryID string, vector []float32, metadata map[string]any) error {
	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return fmt.Errorf("entryID required")
	}
	_, err := s.pc.UpsertVectors(ctx, s.indexHost, UpsertRequest{
		Namespace: s.namespace,
		Vectors: []Vector{
			{ID: entryID, Values: vector, Metadata: metadata},
		},
	})
	return err
}

func (s *bankIndex) Search(ctx context.Context, vector []float32, filter QueryFilter, limit int) ([]Candidate, error) {
	resp, err := s.pc.Query(ctx, s.indexHost, QueryRequest{
		Namespace:       s.namespace,
		Vector:          vector,
		TopK:            limit,
		Filter:          buildFilter(filter),
		IncludeValues:   false,
		IncludeMetadata: false,
	})
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		if strings.TrimSpace(m.ID) == "" {
			continue
		}
		out = append(out, Candidate{EntryID: m.ID, Score: m.Score})
	}
	return out, nil
}

func buildFilter(f QueryFilter) map[string]any {
	out := map[string]any{}
	if f.Subject != "" {
		out["subject"] = map[string]any{"$eq": f.Subject}
	}
	if f.Chapter != "" {
		out["chapter"] = map[string]any{"$eq": f.Chapter}
	}
	if f.Difficulty != "" {
		out["difficulty"] = map[string]any{"$eq": f.Difficulty}
	}
	if len(f.Tags) > 0 {
		out["tags"] = map[string]any{"$in": f.Tags}
	}
	if len(f.Topics) > 0 {
		out["topics"] = map[string]any{"$in": f.Topics}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
