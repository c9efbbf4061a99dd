package whatsapp

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"go.mau.fi/whatsmeow/store/sqlstore"

	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/log"
)

const defaultSQLiteDSN = "file:whatsapp.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

func openDatastore(ctx context.Context, driver, dsn string) (*sqlstore.Container, error) {
	driver = normalizeDatastoreDriver(driver)
	dsn = normalizeDatastoreDSN(driver, dsn)

	log.SessionOp("datastore").Info("Initializing WhatsApp datastore with driver=" + driver)

	container, err := sqlstore.New(ctx, driver, dsn, log.WhatsApp("Database"))
	if err != nil {
		return nil, fmt.Errorf("open %s datastore: %w", driver, err)
	}
	return container, nil
}

func normalizeDatastoreDriver(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return "sqlite"
	case "postgresql", "pgx":
		return "pgx"
	default:
		return strings.ToLower(strings.TrimSpace(driver))
	}
}

func normalizeDatastoreDSN(driver string, dsn string) string {
	dsn = strings.TrimSpace(dsn)
	switch driver {
	case "sqlite":
		if dsn == "" {
			return defaultSQLiteDSN
		}
		if !strings.Contains(dsn, "foreign_keys") {
			return appendDSNParam(dsn, "_pragma", "foreign_keys(1)")
		}
		return dsn
	case "pgx":
		dsn = appendDSNParam(dsn, "prefer_simple_protocol", "true")
		dsn = appendDSNParam(dsn, "statement_cache_capacity", "0")
		dsn = appendDSNParam(dsn, "default_query_exec_mode", "simple_protocol")
		return dsn
	}
	return dsn
}

func appendDSNParam(current string, key string, value string) string {
	if strings.Contains(current, key+"="+value) || (key != "_pragma" && strings.Contains(current, key+"=")) {
		return current
	}
	separator := "?"
	if strings.Contains(current, "?") {
		if strings.HasSuffix(current, "?") || strings.HasSuffix(current, "&") {
			separator = ""
		} else {
			separator = "&"
		}
	}
	return current + separator + key + "=" + value
}
