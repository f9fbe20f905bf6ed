package storage

import (
	"database/sql"
	"fmt"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"

	"ctf/internal/config"
	"ctf/internal/domain"
	"ctf/internal/report"
)

const createRunsTable = "CREATE TABLE IF NOT EXISTS classify_runs (" +
	"id BIGINT AUTO_INCREMENT PRIMARY KEY, " +
	"created_at VARCHAR(64) NOT NULL, " +
	"machine VARCHAR(128) NOT NULL, " +
	"compiler VARCHAR(64) NOT NULL, " +
	"report_path VARCHAR(1024) NOT NULL, " +
	"total_tests INT NOT NULL, " +
	"failures INT NOT NULL)"

// MySQLStorage records classify runs in a MySQL table, one row per report
type MySQLStorage struct {
	db *sql.DB
}

// OpenMySQL connects to the configured server, creating the history database
// and table when they don't exist yet
func OpenMySQL(cfg config.DatabaseConfig) (*MySQLStorage, error) {
	if !isValidDatabaseName(cfg.Name) {
		return nil, fmt.Errorf("invalid database name: %s", cfg.Name)
	}

	server, err := sql.Open("mysql", serverDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer server.Close()

	if err := server.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}

	exists, err := databaseExists(server, cfg.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check database %s: %w", cfg.Name, err)
	}
	if !exists {
		if _, err := server.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", cfg.Name)); err != nil {
			return nil, fmt.Errorf("failed to create database %s: %w", cfg.Name, err)
		}
		log.WithField("database", cfg.Name).Info("created history database")
	}

	db, err := sql.Open("mysql", databaseDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Name, err)
	}
	if _, err := db.Exec(createRunsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}
	return &MySQLStorage{db: db}, nil
}

// Record inserts one row per classified report of the run
func (m *MySQLStorage) Record(summary *domain.RunSummary) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO classify_runs " +
		"(created_at, machine, compiler, report_path, total_tests, failures) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare history insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range summary.Reports {
		if _, err := stmt.Exec(summary.Meta.Timestamp, r.Machine, r.Compiler, r.ReportPath, r.TotalTests, report.Failures(r)); err != nil {
			tx.Rollback()
			return fmt.Errorf("record %s: %w", r.ReportPath, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}

// Recent returns the last limit recorded rows, newest first
func (m *MySQLStorage) Recent(limit int) ([]domain.HistoryRun, error) {
	rows, err := m.db.Query("SELECT id, created_at, machine, compiler, report_path, total_tests, failures "+
		"FROM classify_runs ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var runs []domain.HistoryRun
	for rows.Next() {
		var run domain.HistoryRun
		if err := rows.Scan(&run.ID, &run.Timestamp, &run.Machine, &run.Compiler, &run.ReportPath, &run.Total, &run.Failures); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close releases the connection pool
func (m *MySQLStorage) Close() error {
	return m.db.Close()
}

func databaseExists(db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRow(query, dbName).Scan(&exists)
	return exists, err
}

// serverDSN connects to the server without selecting a database
func serverDSN(cfg config.DatabaseConfig) string {
	return baseConfig(cfg).FormatDSN()
}

func databaseDSN(cfg config.DatabaseConfig) string {
	c := baseConfig(cfg)
	c.DBName = cfg.Name
	return c.FormatDSN()
}

func baseConfig(cfg config.DatabaseConfig) *mysql.Config {
	c := mysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	return c
}

// isValidDatabaseName guards the one statement that can't take a placeholder
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	invalid := []string{"'", "\"", "`", ";", "--", "/*", "*/", "DROP", "DELETE", "TRUNCATE"}
	upper := strings.ToUpper(name)
	for _, s := range invalid {
		if strings.Contains(upper, s) {
			return false
		}
	}
	return true
}
