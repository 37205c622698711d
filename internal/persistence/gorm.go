// Copyright © 2025 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/golang-migrate/migrate/v4"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"gorm.io/gorm"

	// file:// migration source
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type gormDB struct {
	gdb *gorm.DB
	db  *sql.DB
}

// Open connects with the dialect, applies the pool settings and, when
// autoMigrate is set, brings the journal schema up to date.
func Open(ctx context.Context, d *Dialect, conf *payrollconf.SQLDBConfig) (Persistence, error) {
	if conf.DSN == "" {
		return nil, i18n.NewError(ctx, msgs.MsgPersistenceMissingDSN)
	}
	gdb, err := gorm.Open(d.Open(conf.DSN), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgPersistenceInitFailed)
	}
	db, err := gdb.DB()
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgPersistenceInitFailed)
	}
	if conf.DebugQueries {
		gdb = gdb.Debug()
	}

	defs := d.Defaults
	db.SetMaxOpenConns(confutil.IntMin(conf.MaxOpenConns, 1, *defs.MaxOpenConns))
	db.SetMaxIdleConns(confutil.Int(conf.MaxIdleConns, *defs.MaxIdleConns))
	db.SetConnMaxIdleTime(confutil.DurationMin(conf.ConnMaxIdleTime, 0, *defs.ConnMaxIdleTime))
	db.SetConnMaxLifetime(confutil.DurationMin(conf.ConnMaxLifetime, 0, *defs.ConnMaxLifetime))

	if confutil.Bool(conf.AutoMigrate, *defs.AutoMigrate) {
		if err := migrateUp(ctx, d, db, conf.MigrationsDir); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	log.L(ctx).Infof("Journal database ready (type=%s)", d.Name)
	return &gormDB{gdb: gdb, db: db}, nil
}

func migrateUp(ctx context.Context, d *Dialect, db *sql.DB, dir string) error {
	if dir == "" {
		return i18n.NewError(ctx, msgs.MsgPersistenceMissingMigration)
	}
	driver, err := d.Migrator(db)
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgPersistenceMigrationFailed)
	}
	log.L(ctx).Infof("Running %s migrations in %s", d.Name, dir)
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, d.Name, driver)
	if err == nil {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return i18n.WrapError(ctx, err, msgs.MsgPersistenceMigrationFailed)
	}
	version, dirty, _ := m.Version()
	log.L(ctx).Infof("Journal schema at v%d (dirty=%t)", version, dirty)
	return nil
}

func (g *gormDB) DB() *gorm.DB {
	return g.gdb
}

func (g *gormDB) Close() {
	err := g.db.Close()
	log.L(context.Background()).Infof("Journal database closed (err=%v)", err)
}
