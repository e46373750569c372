package db

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

var (
	DB *sqlx.DB
)

//go:embed migrations/*.sql
var embedded embed.FS

func init() {
	// modernc registers as "sqlite", which sqlx doesn't know by default
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Driver picks the sql driver for a DATABASE_URL. postgres:// URLs go to
// lib/pq, everything else is treated as a SQLite DSN.
func Driver(databaseURL string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return "postgres", databaseURL
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return "sqlite", strings.TrimPrefix(databaseURL, "sqlite://")
	default:
		return "sqlite", databaseURL
	}
}

// Init opens the database and assigns it to DB.
func Init(databaseURL string) error {
	conn, err := Open(databaseURL)
	if err != nil {
		return err
	}
	DB = conn
	return nil
}

// Open connects, retrying while the server comes up.
func Open(databaseURL string) (*sqlx.DB, error) {
	const maxRetries = 10
	const retryInterval = 2 * time.Second

	driver, dsn := Driver(databaseURL)
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		var conn *sqlx.DB
		conn, err = sqlx.Connect(driver, dsn)
		if err == nil {
			if driver == "sqlite" {
				// one writer; also keeps :memory: databases on a single connection
				conn.SetMaxOpenConns(1)
			}
			log.Info().Str("driver", driver).Msg("connected to database")
			return conn, nil
		}

		log.Error().Err(err).
			Int("attempt", attempt).
			Str("driver", driver).
			Msgf("failed to connect to database, retrying in %s", retryInterval)

		time.Sleep(retryInterval)
	}

	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", maxRetries, err)
}

// RunMigrations executes every "*.up.sql" in migrationsPath sorted by name,
// ignoring "*.down.sql". An empty path runs the migrations built into the
// binary.
func RunMigrations(conn *sqlx.DB, migrationsPath string) error {
	var fsys fs.FS = embedded
	dir := "migrations"
	if migrationsPath != "" {
		fsys = os.DirFS(migrationsPath)
		dir = "."
	}

	files, err := fs.Glob(fsys, path.Join(dir, "*.up.sql"))
	if err != nil {
		log.Error().Err(err).Msg("failed to list up migrations")
		return fmt.Errorf("failed to glob migrations: %w", err)
	}
	// sorted so they run in deterministic order
	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := fs.ReadFile(fsys, file)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("failed to read migration file")
			return fmt.Errorf("could not read migration %q: %w", file, err)
		}
		sqlStmt := strings.TrimSpace(string(sqlBytes))
		if sqlStmt == "" {
			continue
		}
		if _, err := conn.Exec(sqlStmt); err != nil {
			return fmt.Errorf("error executing migration %q: %w", file, err)
		}
		log.Debug().Str("file", file).Msg("applied migration")
	}
	return nil
}
