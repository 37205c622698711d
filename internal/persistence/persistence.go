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

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"gorm.io/gorm"
)

// Persistence is the database behind the transaction journal
type Persistence interface {
	DB() *gorm.DB
	Close()
}

const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// Dialect pairs a gorm dialector with the golang-migrate driver for the same database
type Dialect struct {
	Name     string
	Open     func(dsn string) gorm.Dialector
	Migrator func(db *sql.DB) (migratedb.Driver, error)
	Defaults *payrollconf.SQLDBConfig
}

func NewPersistence(ctx context.Context, conf *payrollconf.DBConfig) (Persistence, error) {
	switch conf.Type {
	case TypeSQLite:
		return Open(ctx, SQLite, &conf.SQLite.SQLDBConfig)
	case TypePostgres:
		return Open(ctx, Postgres, &conf.Postgres.SQLDBConfig)
	default:
		return nil, i18n.NewError(ctx, msgs.MsgPersistenceInvalidType, conf.Type)
	}
}
