package mongo

import (
	"context"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestNewDBConnectFailure(t *testing.T) {
	orig := connectMongo
	t.Cleanup(func() { connectMongo = orig })

	connectMongo = func(_ context.Context, _ *options.ClientOptions) (*mongoLib.Client, error) {
		return nil, errors.New("connection refused")
	}

	_, err := NewDB(context.Background(), DialInfo{Addr: "127.0.0.1:27017", DBName: "blog"})
	require.ErrorContains(t, err, "connect db")
}

func TestNewDBPingFailure(t *testing.T) {
	// connecting is lazy in the driver, only the ping needs stubbing
	orig := pingMongo
	t.Cleanup(func() { pingMongo = orig })

	pingMongo = func(context.Context, *mongoLib.Client) error {
		return errors.New("no primary")
	}

	_, err := NewDB(context.Background(), DialInfo{Addr: "127.0.0.1:27017", DBName: "blog"})
	require.ErrorContains(t, err, "ping db")
}

func TestBuildURI(t *testing.T) {
	t.Parallel()

	require.Equal(t, "mongodb://127.0.0.1:27017/blog",
		buildURI(DialInfo{Addr: "127.0.0.1:27017", DBName: "blog"}))

	require.Equal(t, "mongodb://writer:s%23cret@db:27017/blog",
		buildURI(DialInfo{Addr: "db:27017", DBName: "blog", User: "writer", Pwd: "s#cret"}))
}
