package db

import (
	"context"
	"log"

	"inkwell-server/config"
	"inkwell-server/store"
	"inkwell-server/store/mongodb"
)

// Conn is the aggregate store the helper functions below operate on. It is
// set once by Connect at startup; tests swap in an in-memory store with
// SetConn.
var Conn store.Store

func Connect(ctx context.Context, cfg *config.Config) error {
	s, err := mongodb.Connect(ctx, cfg.MongoUri, cfg.MongoDb)
	if err != nil {
		return err
	}

	log.Println("connected to document store")

	Conn = s
	return nil
}

func SetConn(s store.Store) {
	Conn = s
}
