package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultIndex = "medicines"

// document is the indexed shape of a medicine.
type document struct {
	ID       uuid.UUID       `json:"id"`
	StoreID  uuid.UUID       `json:"store_id"`
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Category string          `json:"category"`
	Type     string          `json:"type"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

func toDocument(m models.Medicine) document {
	return document{
		ID:       m.ID,
		StoreID:  m.StoreID,
		Name:     m.Name,
		Brand:    m.Brand,
		Category: m.Category,
		Type:     m.Type,
		Price:    m.Price,
		Quantity: m.Quantity,
	}
}

func (d document) medicine() models.Medicine {
	return models.Medicine{
		ID:       d.ID,
		StoreID:  d.StoreID,
		Name:     d.Name,
		Brand:    d.Brand,
		Category: d.Category,
		Type:     d.Type,
		Price:    d.Price,
		Quantity: d.Quantity,
	}
}

type MedicineIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewMedicineIndex(es *elasticsearch.Client, index string) *MedicineIndex {
	if index == "" {
		index = DefaultIndex
	}
	return &MedicineIndex{es: es, index: index}
}

func responseError(op string, status string, body io.Reader) error {
	b, _ := io.ReadAll(body)
	return fmt.Errorf("es: %s: %s: %s", op, status, bytes.TrimSpace(b))
}

func (ix *MedicineIndex) IndexMedicine(ctx context.Context, m models.Medicine) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(toDocument(m)); err != nil {
		return fmt.Errorf("es: encode: %w", err)
	}

	res, err := ix.es.Index(ix.index, &buf,
		ix.es.Index.WithContext(ctx),
		ix.es.Index.WithDocumentID(m.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("es: index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("index", res.Status(), res.Body)
	}
	return nil
}

// DeleteMedicine removes a document; a missing document is not an error.
func (ix *MedicineIndex) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	res, err := ix.es.Delete(ix.index, id.String(), ix.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es: delete: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		return responseError("delete", res.Status(), res.Body)
	}
	return nil
}

func (ix *MedicineIndex) SearchMedicines(ctx context.Context, query string, from, size int) (int64, []models.Medicine, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "brand", "category"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("es: encode: %w", err)
	}

	res, err := ix.es.Search(
		ix.es.Search.WithContext(ctx),
		ix.es.Search.WithIndex(ix.index),
		ix.es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("es: search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, responseError("search", res.Status(), res.Body)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("es: decode: %w", err)
	}

	meds := make([]models.Medicine, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		meds[i] = hit.Source.medicine()
	}
	return r.Hits.Total.Value, meds, nil
}
