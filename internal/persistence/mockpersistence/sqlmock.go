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
package mockpersistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Confidential-Secret-Vault/app/internal/persistence"
	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/DATA-DOG/go-sqlmock"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SQLMockProvider speaks the postgres dialect to a go-sqlmock connection
type SQLMockProvider struct {
	DB   *sql.DB
	Mock sqlmock.Sqlmock
	P    persistence.Persistence
}

func NewSQLMockProvider() (mp *SQLMockProvider, err error) {
	mp = &SQLMockProvider{}
	if mp.DB, mp.Mock, err = sqlmock.New(); err != nil {
		return nil, err
	}
	mp.P, err = persistence.Open(context.Background(), &persistence.Dialect{
		Name: "sqlmock",
		Open: func(string) gorm.Dialector {
			return gormpostgres.New(gormpostgres.Config{Conn: mp.DB})
		},
		Migrator: func(*sql.DB) (migratedb.Driver, error) {
			return nil, fmt.Errorf("migrations not supported against sqlmock")
		},
		Defaults: &payrollconf.SQLDBConfig{
			MaxOpenConns:    confutil.P(1),
			MaxIdleConns:    confutil.P(1),
			ConnMaxIdleTime: confutil.P("0"),
			ConnMaxLifetime: confutil.P("0"),
			AutoMigrate:     confutil.P(false),
		},
	}, &payrollconf.SQLDBConfig{DSN: "mocked"})
	return mp, err
}
