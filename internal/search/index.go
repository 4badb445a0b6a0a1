package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/electroshop/internal/models"
)

const pageSize = 100

// Query mirrors the product search filters; empty fields are ignored.
type Query struct {
	Text     string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type Index interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	Search(ctx context.Context, q Query) ([]models.Product, error)
}

type ESIndex struct {
	Client *elasticsearch.Client
	Name   string
}

type Config struct {
	URL      string
	Username string
	Password string
	Index    string
	// Transport overrides the HTTP transport, mainly for tests.
	Transport http.RoundTripper
}

func NewESIndex(ctx context.Context, cfg Config) (*ESIndex, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("info", res.Status(), res.Body)
	}

	idx := &ESIndex{Client: client, Name: cfg.Index}
	if err := idx.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

// textWithRaw keeps the analyzed field for relevance and an exact keyword copy
// for substring matching.
var textWithRaw = map[string]any{
	"type":   "text",
	// 8191 chars keeps the term under Lucene's 32766 byte limit.
	"fields": map[string]any{"raw": map[string]any{"type": "keyword", "ignore_above": 8191}},
}

var indexMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"id":          map[string]any{"type": "keyword"},
			"name":        textWithRaw,
			"description": textWithRaw,
			"brand":       map[string]any{"type": "keyword"},
			"category":    map[string]any{"type": "keyword"},
			"price":       map[string]any{"type": "double"},
			"inStock":     map[string]any{"type": "boolean"},
		},
	},
}

func (i *ESIndex) ensureIndex(ctx context.Context) error {
	res, err := i.Client.Indices.Exists([]string{i.Name}, i.Client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return i.updateMapping(ctx)
	}

	body, err := encode(indexMapping)
	if err != nil {
		return err
	}
	res, err = i.Client.Indices.Create(i.Name,
		i.Client.Indices.Create.WithContext(ctx),
		i.Client.Indices.Create.WithBody(body),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res.Status(), res.Body)
	}
	return nil
}

// updateMapping adds the raw subfields to an index created before they existed.
// Documents indexed earlier need a reindex to populate them.
func (i *ESIndex) updateMapping(ctx context.Context) error {
	body, err := encode(indexMapping["mappings"])
	if err != nil {
		return err
	}
	res, err := i.Client.Indices.PutMapping([]string{i.Name}, body,
		i.Client.Indices.PutMapping.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch put mapping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("put mapping", res.Status(), res.Body)
	}
	return nil
}

func (i *ESIndex) IndexProduct(ctx context.Context, p *models.Product) error {
	body, err := encode(p)
	if err != nil {
		return err
	}
	res, err := i.Client.Index(i.Name, body,
		i.Client.Index.WithContext(ctx),
		i.Client.Index.WithDocumentID(p.ID.String()),
		i.Client.Index.WithRefresh("wait_for"),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index", res.Status(), res.Body)
	}
	return nil
}

func (i *ESIndex) DeleteProduct(ctx context.Context, id string) error {
	res, err := i.Client.Delete(i.Name, id, i.Client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch delete: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res.Status(), res.Body)
	}
	return nil
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// buildQuery matches the text as a case-insensitive substring of name or
// description, like the database search. Hits are sorted by name then id so
// after can continue from the previous page.
func buildQuery(q Query, after []any) map[string]any {
	var must []any
	if q.Text != "" {
		pattern := "*" + wildcardEscaper.Replace(q.Text) + "*"
		var should []any
		for _, field := range []string{"name.raw", "description.raw"} {
			should = append(should, map[string]any{
				"wildcard": map[string]any{
					field: map[string]any{"value": pattern, "case_insensitive": true},
				},
			})
		}
		must = append(must, map[string]any{
			"bool": map[string]any{"should": should, "minimum_should_match": 1},
		})
	} else {
		must = append(must, map[string]any{"match_all": map[string]any{}})
	}

	var filter []any
	if q.Category != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"category": q.Category}})
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		rng := map[string]any{}
		if q.MinPrice != nil {
			rng["gte"] = q.MinPrice.InexactFloat64()
		}
		if q.MaxPrice != nil {
			rng["lte"] = q.MaxPrice.InexactFloat64()
		}
		filter = append(filter, map[string]any{"range": map[string]any{"price": rng}})
	}

	boolQuery := map[string]any{"must": must}
	if len(filter) > 0 {
		boolQuery["filter"] = filter
	}
	body := map[string]any{
		"query": map[string]any{"bool": boolQuery},
		"size":  pageSize,
		"sort": []any{
			map[string]any{"name.raw": "asc"},
			map[string]any{"id": "asc"},
		},
	}
	if len(after) > 0 {
		body["search_after"] = after
	}
	return body
}

type searchPage struct {
	Hits struct {
		Hits []struct {
			Source models.Product `json:"_source"`
			Sort   []any          `json:"sort"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search returns every matching product, following search_after until a
// short page.
func (i *ESIndex) Search(ctx context.Context, q Query) ([]models.Product, error) {
	prods := []models.Product{}
	var after []any
	for {
		page, err := i.searchPage(ctx, buildQuery(q, after))
		if err != nil {
			return nil, err
		}
		hits := page.Hits.Hits
		for _, hit := range hits {
			prods = append(prods, hit.Source)
		}
		if len(hits) < pageSize {
			return prods, nil
		}
		after = hits[len(hits)-1].Sort
		if len(after) == 0 {
			return prods, nil
		}
	}
}

func (i *ESIndex) searchPage(ctx context.Context, query map[string]any) (*searchPage, error) {
	body, err := encode(query)
	if err != nil {
		return nil, err
	}

	res, err := i.Client.Search(
		i.Client.Search.WithContext(ctx),
		i.Client.Search.WithIndex(i.Name),
		i.Client.Search.WithBody(body),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("search", res.Status(), res.Body)
	}

	var page searchPage
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("elasticsearch decode: %w", err)
	}
	return &page, nil
}

func encode(v any) (io.Reader, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("elasticsearch encode: %w", err)
	}
	return &buf, nil
}

func responseError(op, status string, body io.Reader) error {
	msg, _ := io.ReadAll(io.LimitReader(body, 1<<10))
	return fmt.Errorf("elasticsearch %s: %s: %s", op, status, bytes.TrimSpace(msg))
}
