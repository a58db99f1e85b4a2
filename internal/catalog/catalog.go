package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpclient "github.com/Alias1177/Inventory/internal/platform/http"
	"github.com/Alias1177/Inventory/models"
)

// Service fetches the published product sales feed and caches the parsed
// rows in the service instance. It is constructed once at process start and
// passed to handlers; there is no package-level state.
type Service struct {
	feedURL string
	client  *httpclient.Client
	logger  zerolog.Logger

	mu        sync.Mutex
	rows      []map[string]string
	fetchedAt time.Time
	ttl       time.Duration
}

// New creates a catalog service backed by the rate-limited platform client.
func New(feedURL string, client *httpclient.Client) *Service {
	return &Service{
		feedURL: feedURL,
		client:  client,
		ttl:     5 * time.Minute,
		logger:  log.With().Str("component", "catalog").Logger(),
	}
}

// Rows returns the catalog as header-keyed rows, fetching the feed when the
// cache is cold or stale.
func (s *Service) Rows(ctx context.Context) ([]map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rows != nil && time.Since(s.fetchedAt) < s.ttl {
		return s.rows, nil
	}

	rows, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.rows = rows
	s.fetchedAt = time.Now()
	return rows, nil
}

func (s *Service) fetch(ctx context.Context) ([]map[string]string, error) {
	s.logger.Debug().Str("url", s.feedURL).Msg("Fetching catalog feed")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog feed: %w", err)
	}
	defer resp.Body.Close()

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing catalog CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("catalog feed has no data rows")
	}

	headers := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		entry := make(map[string]string, len(headers))
		empty := true
		for i, header := range headers {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			if value != "" {
				empty = false
			}
			entry[strings.TrimSpace(header)] = value
		}
		if empty {
			continue
		}
		rows = append(rows, entry)
	}

	return rows, nil
}

// SeedEntry is one product from the feed plus its latest stock snapshot.
type SeedEntry struct {
	Product    models.Product
	StockLevel int
}

// SeedEntries maps catalog rows onto seedable entries, keeping the last
// stock figure seen per product. Rows without a product identifier are
// skipped. Column naming in the feed is not guaranteed, so a few spellings
// are tried per field.
func (s *Service) SeedEntries(ctx context.Context) ([]SeedEntry, error) {
	rows, err := s.Rows(ctx)
	if err != nil {
		return nil, err
	}

	var entries []SeedEntry
	index := make(map[string]int)
	for _, row := range rows {
		id := firstNonEmpty(row, "Product_ID", "product_id", "ProductID", "Product Id")
		if id == "" {
			continue
		}

		stock := 0
		if raw := firstNonEmpty(row, "Stock_Level", "stock_level", "Current_Stock", "Stock"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
				stock = n
			}
		}

		if i, seen := index[id]; seen {
			entries[i].StockLevel = stock
			continue
		}

		index[id] = len(entries)
		entries = append(entries, SeedEntry{
			Product: models.Product{
				ProductID: id,
				Name:      firstNonEmpty(row, "Product_Name", "product_name", "Name"),
				Category:  firstNonEmpty(row, "Category", "category"),
			},
			StockLevel: stock,
		})
	}

	return entries, nil
}

func firstNonEmpty(row map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := row[key]; v != "" {
			return v
		}
	}
	return ""
}
