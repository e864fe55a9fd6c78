package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type migration struct {
	version int
	name    string
	up      string
	down    string
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up, down or status")
	dir := flag.String("dir", "migrations", "directory holding NNN_name.up.sql / NNN_name.down.sql pairs")
	steps := flag.Int("steps", 1, "number of migrations to revert in down mode (0 reverts all)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.WithError(err).Fatal("failed to ping database")
	}
	if err := ensureSchemaMigrations(db); err != nil {
		log.WithError(err).Fatal("failed to ensure schema_migrations")
	}

	migrations, err := loadMigrations(*dir)
	if err != nil {
		log.WithError(err).Fatal("failed to load migrations")
	}

	switch strings.ToLower(*mode) {
	case "up":
		err = applyUp(db, log, migrations)
	case "down":
		err = applyDown(db, log, migrations, *steps)
	case "status":
		err = printStatus(db, migrations)
	default:
		log.Fatalf("unknown mode: %s", *mode)
	}
	if err != nil {
		log.WithError(err).Fatalf("migration %s failed", *mode)
	}
	log.Infof("migration %s completed", *mode)
}

func ensureSchemaMigrations(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

// loadMigrations pairs up/down files by version. A version without an up
// file is an error; a missing down file only matters when reverting.
func loadMigrations(dir string) ([]migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	byVersion := make(map[int]*migration)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		var kind string
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			kind = "up"
		case strings.HasSuffix(name, ".down.sql"):
			kind = "down"
		default:
			continue
		}

		version, label, err := parseFilename(strings.TrimSuffix(name, "."+kind+".sql"))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		m, ok := byVersion[version]
		if !ok {
			m = &migration{version: version, name: label}
			byVersion[version] = m
		}
		path := filepath.Join(dir, name)
		if kind == "up" {
			m.up = path
		} else {
			m.down = path
		}
	}

	migrations := make([]migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.up == "" {
			return nil, fmt.Errorf("migration %03d has no up file", m.version)
		}
		migrations = append(migrations, *m)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].version < migrations[j].version })
	return migrations, nil
}

func parseFilename(base string) (int, string, error) {
	parts := strings.SplitN(base, "_", 2)
	if len(parts) != 2 {
		return 0, "", errors.New("expected NNN_name")
	}
	version, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("invalid version %q", parts[0])
	}
	return version, parts[1], nil
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func applyUp(db *sql.DB, log *logrus.Logger, migrations []migration) error {
	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		log.WithField("version", m.version).Infof("applying %s", m.name)
		err := runInTx(db, m.up, func(tx *sql.Tx) error {
			_, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", m.version, m.name)
			return err
		})
		if err != nil {
			return fmt.Errorf("apply %03d_%s: %w", m.version, m.name, err)
		}
	}
	return nil
}

func applyDown(db *sql.DB, log *logrus.Logger, migrations []migration, steps int) error {
	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}
	reverted := 0
	for i := len(migrations) - 1; i >= 0; i-- {
		m := migrations[i]
		if !applied[m.version] {
			continue
		}
		if steps > 0 && reverted == steps {
			break
		}
		if m.down == "" {
			return fmt.Errorf("migration %03d has no down file", m.version)
		}
		log.WithField("version", m.version).Infof("reverting %s", m.name)
		err := runInTx(db, m.down, func(tx *sql.Tx) error {
			_, err := tx.Exec("DELETE FROM schema_migrations WHERE version = $1", m.version)
			return err
		})
		if err != nil {
			return fmt.Errorf("revert %03d_%s: %w", m.version, m.name, err)
		}
		reverted++
	}
	return nil
}

func printStatus(db *sql.DB, migrations []migration) error {
	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		state := "pending"
		if applied[m.version] {
			state = "applied"
		}
		fmt.Printf("%03d %-40s %s\n", m.version, m.name, state)
	}
	return nil
}

// runInTx executes a SQL file and its bookkeeping atomically.
func runInTx(db *sql.DB, path string, record func(tx *sql.Tx) error) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(script)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := record(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
