package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/postbook/postbook/internal/models"
)

// PostDoc is the indexed shape of a post.
type PostDoc struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	UserID string   `json:"user_id"`
	Tags   []string `json:"tags"`
}

func DocFromPost(p *models.Post) PostDoc {
	doc := PostDoc{
		ID:     p.ID.String(),
		Name:   p.Name,
		UserID: p.UserID.String(),
	}
	for _, t := range p.Tags {
		doc.Tags = append(doc.Tags, t.TagName)
	}
	return doc
}

func IndexPost(ctx context.Context, es *elasticsearch.Client, index string, post *models.Post) error {
	doc := DocFromPost(post)
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("index post: marshal: %w", err)
	}

	res, err := es.Index(
		index,
		bytes.NewReader(body),
		es.Index.WithDocumentID(doc.ID),
		es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index post: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index post: %s", res.Status())
	}
	return nil
}

func RemovePost(ctx context.Context, es *elasticsearch.Client, index, id string) error {
	res, err := es.Delete(index, id, es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("remove post: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("remove post: %s", res.Status())
	}
	return nil
}

// Posts runs a fuzzy full-text query over post names and tags.
func Posts(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []PostDoc, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "tags"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search posts: encode: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search posts: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search posts: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source PostDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	docs := make([]PostDoc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}
