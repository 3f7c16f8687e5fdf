package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/sansan0/trendradar/pkg/config"
	"github.com/sansan0/trendradar/pkg/model"
)

// Storage 负责归档每次分析运行及其通知结果
type Storage struct {
	db *sql.DB
}

func NewStorage(cfg config.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id SERIAL PRIMARY KEY,
			source TEXT,
			model TEXT,
			markdown TEXT,
			markdown_path TEXT,
			html_path TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS notify_results (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES analysis_runs(id),
			channel TEXT,
			status INTEGER,
			error TEXT
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}

	return nil
}

// SaveRun 在一个事务里归档分析运行及其各渠道推送结果
func (s *Storage) SaveRun(run *model.AnalysisRun, channels []model.ChannelResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var runID int
	err = tx.QueryRow(`
		INSERT INTO analysis_runs (source, model, markdown, markdown_path, html_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		run.Source, run.Model, run.Markdown, run.MarkdownPath, run.HTMLPath).Scan(&runID)
	if err != nil {
		return fmt.Errorf("failed to insert analysis run: %w", err)
	}

	for _, ch := range channels {
		_, err = tx.Exec(`
			INSERT INTO notify_results (run_id, channel, status, error)
			VALUES ($1, $2, $3, $4)`,
			runID, ch.Channel, ch.Status, ch.Error)
		if err != nil {
			return fmt.Errorf("failed to insert notify result: %w", err)
		}
	}

	return tx.Commit()
}
