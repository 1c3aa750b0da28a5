package database

import (
	"context"

	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

type Options struct {
	User     string
	Addr     string
	Password string
	Database string
}

func PostgreSQLConnection(opts Options) *pg.DB {
	return pg.Connect(&pg.Options{
		User:     opts.User,
		Addr:     opts.Addr,
		Password: opts.Password,
		Database: opts.Database,
	})
}

// CreateSchema creates the room tables when they are missing.
func CreateSchema(ctx context.Context, db *pg.DB) error {
	for _, model := range []interface{}{
		(*models.RoomRecord)(nil),
		(*models.ResultRecord)(nil),
	} {
		err := db.ModelContext(ctx, model).CreateTable(&orm.CreateTableOptions{IfNotExists: true})
		if err != nil {
			return err
		}
	}
	return nil
}
