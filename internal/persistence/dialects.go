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
	"database/sql"

	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	gormpostgres "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
)

var SQLite = &Dialect{
	Name: TypeSQLite,
	Open: gormsqlite.Open,
	Migrator: func(db *sql.DB) (migratedb.Driver, error) {
		return migratesqlite3.WithInstance(db, &migratesqlite3.Config{})
	},
	Defaults: payrollconf.SQLiteDefaults,
}

var Postgres = &Dialect{
	Name: TypePostgres,
	Open: gormpostgres.Open,
	Migrator: func(db *sql.DB) (migratedb.Driver, error) {
		return migratepostgres.WithInstance(db, &migratepostgres.Config{})
	},
	Defaults: payrollconf.PostgresDefaults,
}
