package storage

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/webdevreplits/azure-01/internal/config"
	"github.com/webdevreplits/azure-01/internal/logging"
)

// Open acquires a storage backend. It attempts the primary engine first:
// the single connection-string form when configured, then the host/port
// component form. Each attempt is bounded by the configured connect
// timeout. On failure it falls back to the embedded engine, and errors only
// when both are unreachable. The caller may still choose to run a
// persistence-free demo mode in that case.
func Open(ctx context.Context, cfg config.DatabaseConfig, log logging.Logger) (Backend, error) {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}

	var pgErr error

	for _, dsn := range candidateDSNs(cfg) {
		attemptCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		b, err := OpenPostgres(attemptCtx, dsn, log)
		cancel()

		if err == nil {
			log.Info(ctx, "connected to primary storage engine", "engine", EnginePostgres)
			return b, nil
		}
		pgErr = err
		log.Warn(ctx, "primary storage engine unreachable", "error", err)
	}

	b, err := OpenSQLite(ctx, cfg.SQLitePath, log)
	if err != nil {
		return nil, fmt.Errorf("all storage engines failed: postgres: %v; sqlite: %w", pgErr, err)
	}

	log.Info(ctx, "connected to fallback storage engine",
		"engine", EngineSQLite, "path", cfg.SQLitePath)
	return b, nil
}

// candidateDSNs lists the primary-engine connection strings to try, in
// order. The explicit URL wins; the component form is only a distinct
// candidate when it differs.
func candidateDSNs(cfg config.DatabaseConfig) []string {
	built := buildDSN(cfg)

	if cfg.URL != "" && cfg.URL != built {
		return []string{cfg.URL, built}
	}
	if cfg.URL != "" {
		return []string{cfg.URL}
	}
	return []string{built}
}

func buildDSN(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:   "/" + cfg.Name,
	}
	if cfg.User != "" {
		if cfg.Password != "" {
			u.User = url.UserPassword(cfg.User, cfg.Password)
		} else {
			u.User = url.User(cfg.User)
		}
	}

	q := url.Values{}
	q.Set("connect_timeout", strconv.Itoa(int(cfg.ConnectTimeout.Seconds())))
	u.RawQuery = q.Encode()

	return u.String()
}
