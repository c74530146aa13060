package realtime

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// channelName is the single Postgres NOTIFY channel the schema triggers emit
// on; the payload carries the table name.
const channelName = "table_changes"

// reconnectDelay is how long the listener waits before re-acquiring a
// connection after a failure.
const reconnectDelay = 5 * time.Second

// Listener feeds the hub from Postgres LISTEN/NOTIFY. It holds one dedicated
// connection from the pool while running.
type Listener struct {
	pool *pgxpool.Pool
	hub  *Hub
}

// NewListener creates a listener that publishes into hub.
func NewListener(pool *pgxpool.Pool, hub *Hub) *Listener {
	return &Listener{pool: pool, hub: hub}
}

// Run blocks consuming notifications until ctx is canceled. Connection
// failures log and retry; Run only returns on context cancellation.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("change feed: listen failed, retrying: %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+channelName); err != nil {
		return err
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var ev Event
		if err := json.Unmarshal([]byte(notification.Payload), &ev); err != nil {
			log.Printf("change feed: bad payload %q: %v", notification.Payload, err)
			continue
		}
		l.hub.Publish(ev)
	}
}
