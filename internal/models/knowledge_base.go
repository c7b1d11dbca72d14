package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Recommendation bucket names.
const (
	BucketSleepRelated    = "sleep_related"
	BucketWellnessRelated = "wellness_related"
	BucketComfortRelated  = "comfort_related"
	BucketBudgetFriendly  = "budget_friendly"
	BucketPremium         = "premium"
)

// RecommendationBuckets lists every bucket in display order.
var RecommendationBuckets = []string{
	BucketSleepRelated,
	BucketWellnessRelated,
	BucketComfortRelated,
	BucketBudgetFriendly,
	BucketPremium,
}

// CatalogEntry is one normalized product.
type CatalogEntry struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Price          Price    `json:"price"`
	Tags           []string `json:"tags"`
	Category       string   `json:"category"`
	Features       []string `json:"features"`
	Summary        string   `json:"summary"`
	SearchableText string   `json:"searchable_text"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// KnowledgeBase is the trained model: everything the chat engine reads.
type KnowledgeBase struct {
	ProductCatalog         Catalog               `json:"product_catalog"`
	Categories             []string              `json:"categories"`
	PriceRanges            map[string]PriceRange `json:"price_ranges"`
	ProductRecommendations map[string][]string   `json:"product_recommendations"`
	FAQResponses           map[string]string     `json:"faq_responses"`
	CreatedAt              time.Time             `json:"created_at"`
}

// IsTrained reports whether kb exists and holds at least one product.
func (kb *KnowledgeBase) IsTrained() bool {
	return kb != nil && kb.ProductCatalog.Len() > 0
}

// FAQTopics returns the FAQ topic keys in sorted order.
func (kb *KnowledgeBase) FAQTopics() []string {
	if kb == nil {
		return []string{}
	}
	topics := make([]string, 0, len(kb.FAQResponses))
	for topic := range kb.FAQResponses {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// Catalog maps product id to entry and remembers insertion order, so results
// are listed in catalog order and the order survives a save/load cycle.
type Catalog struct {
	ids     []string
	entries map[string]CatalogEntry
}

// Add inserts e. It returns false, leaving the catalog unchanged, if the id is taken.
func (c *Catalog) Add(e CatalogEntry) bool {
	if c.entries == nil {
		c.entries = make(map[string]CatalogEntry)
	}
	if _, exists := c.entries[e.ID]; exists {
		return false
	}
	c.ids = append(c.ids, e.ID)
	c.entries[e.ID] = e
	return true
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.entries[id]
	return ok
}

func (c *Catalog) Get(id string) (CatalogEntry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

func (c *Catalog) Len() int {
	return len(c.ids)
}

// Entries returns all entries in catalog order.
func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.entries[id])
	}
	return out
}

func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range c.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(c.entries[id])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Catalog) UnmarshalJSON(data []byte) error {
	*c = Catalog{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("product catalog: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("product catalog: expected key, got %v", tok)
		}
		var entry CatalogEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("product catalog entry %q: %w", key, err)
		}
		entry.ID = key
		if !c.Add(entry) {
			return fmt.Errorf("product catalog: duplicate id %q", key)
		}
	}

	_, err = dec.Token()
	return err
}
