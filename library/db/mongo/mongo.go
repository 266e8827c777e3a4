// Package mongo wraps the MongoDB driver with the connection policy shared
// by every collection in the service.
package mongo

import (
	"context"
	"net/url"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tech-blog-pro/blog-api/library/log"
)

const (
	dialTimeout       = 30 * time.Second
	heartbeatInterval = 10 * time.Second
	healthInterval    = 5 * time.Second
	healthPingTimeout = 5 * time.Second
)

// DB is the handle daos use to reach collections.
type DB interface {
	Close(ctx context.Context) error
	GetCol(colName string) *mongoLib.Collection
	CurrentDB() *mongoLib.Database
}

// DialInfo is the connection information for one database.
type DialInfo struct {
	Addr,
	DBName,
	User,
	Pwd string
}

type db struct {
	cli      *mongoLib.Client
	dialInfo DialInfo
	cancel   context.CancelFunc
}

var (
	connectMongo = func(ctx context.Context, opts *options.ClientOptions) (*mongoLib.Client, error) {
		return mongoLib.Connect(ctx, opts)
	}
	pingMongo = func(ctx context.Context, cli *mongoLib.Client) error {
		return cli.Ping(ctx, readpref.Primary())
	}
)

// NewDB dials one long-lived client and relies on the driver for reconnects.
func NewDB(ctx context.Context, dialInfo DialInfo) (DB, error) {
	log.Logger.Info("try to connect to mongodb",
		zap.String("addr", dialInfo.Addr),
		zap.String("db", dialInfo.DBName),
	)

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(buildURI(dialInfo)).
		SetConnectTimeout(dialTimeout).
		SetServerSelectionTimeout(dialTimeout).
		SetHeartbeatInterval(heartbeatInterval).
		SetRetryReads(true).
		SetRetryWrites(true).
		SetMaxPoolSize(100).
		SetMaxConnIdleTime(300 * time.Second)

	cli, err := connectMongo(dialCtx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connect db")
	}

	// fail at startup instead of on the first query
	if err = pingMongo(dialCtx, cli); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping db")
	}

	healthCtx, healthCancel := context.WithCancel(context.Background())
	d := &db{cli: cli, dialInfo: dialInfo, cancel: healthCancel}
	go d.runHealthCheck(healthCtx)

	return d, nil
}

func buildURI(dialInfo DialInfo) string {
	uri := &url.URL{
		Scheme: "mongodb",
		Host:   dialInfo.Addr,
		Path:   "/" + dialInfo.DBName,
	}
	if dialInfo.User != "" || dialInfo.Pwd != "" {
		uri.User = url.UserPassword(dialInfo.User, dialInfo.Pwd)
	}

	return uri.String()
}

// runHealthCheck pings periodically and only logs failures; the driver
// recovers connections on its own when the server comes back.
func (d *db) runHealthCheck(ctx context.Context) {
	ticker := time.NewTicker(healthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		pingCtx, cancel := context.WithTimeout(context.Background(), healthPingTimeout)
		err := pingMongo(pingCtx, d.cli)
		cancel()

		if err != nil {
			log.Logger.Warn("mongodb ping failed (driver will auto-recover)",
				zap.Error(err),
				zap.String("addr", d.dialInfo.Addr),
			)
		}
	}
}

// CurrentDB returns the database named in the dial info.
func (d *db) CurrentDB() *mongoLib.Database {
	return d.cli.Database(d.dialInfo.DBName)
}

// GetCol returns a collection handle by name.
func (d *db) GetCol(colName string) *mongoLib.Collection {
	return d.CurrentDB().Collection(colName)
}

// Close stops the health checker and disconnects the client.
func (d *db) Close(ctx context.Context) error {
	if d.cancel != nil {
		d.cancel()
	}

	if ctx == nil {
		ctx = context.Background()
	}
	closeCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	return d.cli.Disconnect(closeCtx)
}
