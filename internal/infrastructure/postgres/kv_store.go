package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

const (
	notifyChannel = "storefront_kv"

	schemaSQL = `CREATE TABLE IF NOT EXISTS storefront_kv (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
)

// notification payload de NOTIFY; el valor se relee de la tabla para no superar el límite de 8000 bytes.
type notification struct {
	Key     string `json:"key"`
	Deleted bool   `json:"deleted"`
}

// KVStore almacenamiento compartido sobre PostgreSQL con LISTEN/NOTIFY para los cambios.
type KVStore struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewKVStore crea la tabla si no existe.
func NewKVStore(ctx context.Context, pool *pgxpool.Pool) (*KVStore, error) {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return nil, fmt.Errorf("postgres: crear tabla storefront_kv: %w", err)
	}
	return &KVStore{pool: pool, tx: NewTxRunner(pool)}, nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM storefront_kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("postgres: leer %q: %w", key, err)
	}
	return value, true, nil
}

// Set hace upsert y notifica en la misma transacción: NOTIFY solo se entrega tras el commit.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	payload, _ := json.Marshal(notification{Key: key})
	return s.tx.Run(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO storefront_kv (key, value, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
			key, value)
		if err != nil {
			return fmt.Errorf("postgres: guardar %q: %w", key, err)
		}
		if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, string(payload)); err != nil {
			return fmt.Errorf("postgres: notificar %q: %w", key, err)
		}
		return nil
	})
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	payload, _ := json.Marshal(notification{Key: key, Deleted: true})
	return s.tx.Run(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM storefront_kv WHERE key = $1`, key)
		if err != nil {
			return fmt.Errorf("postgres: borrar %q: %w", key, err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, string(payload)); err != nil {
			return fmt.Errorf("postgres: notificar %q: %w", key, err)
		}
		return nil
	})
}

// Watch reserva una conexión del pool para LISTEN mientras ctx siga vivo.
func (s *KVStore) Watch(ctx context.Context, key string) (<-chan repository.Change, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: adquirir conexión: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("postgres: LISTEN: %w", err)
	}

	out := make(chan repository.Change, 16)
	go func() {
		defer close(out)
		defer func() {
			_, _ = conn.Exec(context.Background(), "UNLISTEN "+notifyChannel)
			conn.Release()
		}()
		for {
			n, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				return
			}
			var msg notification
			if json.Unmarshal([]byte(n.Payload), &msg) != nil || msg.Key != key {
				continue
			}
			change := repository.Change{Key: key, Deleted: msg.Deleted}
			if !msg.Deleted {
				value, found, err := s.Get(ctx, key)
				if err != nil {
					continue
				}
				change.Value, change.Deleted = value, !found
			}
			select {
			case out <- change:
			default:
			}
		}
	}()
	return out, nil
}

// Close cierra el pool.
func (s *KVStore) Close() error {
	s.pool.Close()
	return nil
}
