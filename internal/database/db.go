package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Alias1177/Inventory/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LowStockThreshold marks inventory levels that need attention.
const LowStockThreshold = 20

// New creates a new database connection
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			product_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT,
			description TEXT,
			reorder_level INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS inventory_records (
			id SERIAL PRIMARY KEY,
			product_id TEXT NOT NULL,
			stock_level INTEGER NOT NULL,
			last_updated TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return err
	}

	// product_id is UNIQUE so the upsert is a single atomic statement and
	// each product keeps exactly one live prediction row.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS predictions (
			id SERIAL PRIMARY KEY,
			product_id TEXT NOT NULL UNIQUE,
			current_stock INTEGER NOT NULL,
			stock_predicted INTEGER NOT NULL,
			risk_level TEXT NOT NULL,
			comment TEXT,
			success BOOLEAN NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)

	return err
}

// UpsertPrediction stores the latest prediction attempt for a product,
// overwriting any previous one and refreshing its timestamp.
func (db *DB) UpsertPrediction(in models.PredictionInput) (*models.PredictionRecord, error) {
	var rec models.PredictionRecord
	var comment sql.NullString

	err := db.QueryRow(`
		INSERT INTO predictions (
			product_id, current_stock, stock_predicted, risk_level, comment, success, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id)
		DO UPDATE SET
			current_stock = EXCLUDED.current_stock,
			stock_predicted = EXCLUDED.stock_predicted,
			risk_level = EXCLUDED.risk_level,
			comment = EXCLUDED.comment,
			success = EXCLUDED.success,
			created_at = EXCLUDED.created_at
		RETURNING id, product_id, current_stock, stock_predicted, risk_level, comment, success, created_at
	`,
		in.ProductID, in.CurrentStock, in.StockPredicted, string(in.RiskLevel),
		nullString(in.Comment), in.Success, time.Now(),
	).Scan(
		&rec.ID, &rec.ProductID, &rec.CurrentStock, &rec.StockPredicted,
		&rec.RiskLevel, &comment, &rec.Success, &rec.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	if comment.Valid {
		rec.Comment = comment.String
	}

	return &rec, nil
}

// GetAllPredictions returns stored predictions, most recent first
func (db *DB) GetAllPredictions(limit int) ([]models.PredictionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT id, product_id, current_stock, stock_predicted, risk_level, comment, success, created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPredictions(rows)
}

// GetPredictionsByRisk returns stored predictions with the given risk level
func (db *DB) GetPredictionsByRisk(risk models.RiskLevel) ([]models.PredictionRecord, error) {
	rows, err := db.Query(`
		SELECT id, product_id, current_stock, stock_predicted, risk_level, comment, success, created_at
		FROM predictions
		WHERE risk_level = $1
		ORDER BY created_at DESC
	`, string(risk))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPredictions(rows)
}

// GetPredictionStats aggregates over all stored prediction records
func (db *DB) GetPredictionStats() (*models.PredictionStats, error) {
	stats := &models.PredictionStats{
		RiskDistribution: make(map[models.RiskLevel]int),
	}

	err := db.QueryRow(`SELECT COUNT(*) FROM predictions`).Scan(&stats.Total)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM predictions WHERE success`).Scan(&stats.Successful)
	if err != nil {
		return nil, err
	}

	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Successful) / float64(stats.Total) * 100
	}

	rows, err := db.Query(`SELECT risk_level, COUNT(*) FROM predictions GROUP BY risk_level`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, err
		}
		stats.RiskDistribution[models.RiskLevel(level)] = count
	}

	return stats, rows.Err()
}

// GetDashboardOverview returns the aggregate counts shown on the dashboard
func (db *DB) GetDashboardOverview() (*models.DashboardOverview, error) {
	var overview models.DashboardOverview

	err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&overview.TotalProducts)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COUNT(DISTINCT product_id) FROM inventory_records WHERE stock_level <= $1
	`, LowStockThreshold).Scan(&overview.LowStockCount)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COUNT(*) FROM predictions
		WHERE risk_level = $1 AND created_at >= NOW() - INTERVAL '24 hours'
	`, string(models.RiskCritical)).Scan(&overview.CriticalRiskCount)
	if err != nil {
		return nil, err
	}

	return &overview, nil
}

// UpsertProduct creates or updates a catalog entry
func (db *DB) UpsertProduct(p models.Product) error {
	_, err := db.Exec(`
		INSERT INTO products (product_id, name, category, description, reorder_level)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			reorder_level = EXCLUDED.reorder_level
	`, p.ProductID, p.Name, nullString(p.Category), nullString(p.Description), p.ReorderLevel)

	return err
}

// RecordStockLevel appends a stock snapshot for a product
func (db *DB) RecordStockLevel(productID string, stockLevel int) error {
	_, err := db.Exec(`
		INSERT INTO inventory_records (product_id, stock_level)
		VALUES ($1, $2)
	`, productID, stockLevel)

	return err
}

func scanPredictions(rows *sql.Rows) ([]models.PredictionRecord, error) {
	var records []models.PredictionRecord

	for rows.Next() {
		var rec models.PredictionRecord
		var comment sql.NullString

		err := rows.Scan(
			&rec.ID, &rec.ProductID, &rec.CurrentStock, &rec.StockPredicted,
			&rec.RiskLevel, &comment, &rec.Success, &rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if comment.Valid {
			rec.Comment = comment.String
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
