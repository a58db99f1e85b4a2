package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpclient "github.com/Alias1177/Inventory/internal/platform/http"
)

const feedCSV = "Product_ID,Product_Name,Category,Stock_Level\n" +
	"P001,Basmati Rice 5kg,Food,65\n" +
	"P002,Coca Cola 2L,Beverages,41\n" +
	"\n" +
	"P003,LED Bulb 9W,Electronics,89\n" +
	"P001,Basmati Rice 5kg,Food,70\n"

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := httpclient.NewClient(httpclient.ClientOptions{
		Timeout:         time.Second,
		RequestsPerSec:  100,
		MaxRetryTimeout: time.Second,
	})
	return New(srv.URL, client), srv
}

func TestRowsParsesFeed(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedCSV))
	})

	rows, err := svc.Rows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4 (blank line skipped)", len(rows))
	}
	if rows[0]["Product_ID"] != "P001" || rows[0]["Category"] != "Food" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
}

func TestRowsCachesFeed(t *testing.T) {
	fetches := 0
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte(feedCSV))
	})

	for i := 0; i < 3; i++ {
		if _, err := svc.Rows(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if fetches != 1 {
		t.Errorf("feed fetched %d times, want 1 (cached)", fetches)
	}
}

func TestSeedEntries(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedCSV))
	})

	entries, err := svc.SeedEntries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3 (duplicate P001 collapsed)", len(entries))
	}
	if entries[1].Product.ProductID != "P002" || entries[1].Product.Name != "Coca Cola 2L" {
		t.Errorf("unexpected entry: %+v", entries[1])
	}
	if entries[1].StockLevel != 41 {
		t.Errorf("P002 stock = %d, want 41", entries[1].StockLevel)
	}
	// The later P001 row wins.
	if entries[0].StockLevel != 70 {
		t.Errorf("P001 stock = %d, want 70", entries[0].StockLevel)
	}
}

func TestRowsEmptyFeed(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Product_ID,Product_Name\n"))
	})

	if _, err := svc.Rows(context.Background()); err == nil {
		t.Error("expected error for feed without data rows")
	}
}
