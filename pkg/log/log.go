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
package log

import (
	"context"
	"io"
	"math"
	"os"
	"strings"
	"sync/atomic"

	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// long values such as memos and hex payloads are truncated in log fields
const maxFieldLength = 61

var (
	rootLogger = logrus.NewEntry(logrus.StandardLogger())

	// L returns the logger carried by the context, or the root logger
	L = loggerFromContext

	configured atomic.Bool
)

type ctxLogKey struct{}

func InitConfig(conf *payrollconf.LogConfig) {
	configured.Store(true)

	defs := payrollconf.LogDefaults
	SetLevel(confutil.StringNotEmpty(conf.Level, *defs.Level))
	logrus.SetOutput(newOutput(conf, defs))

	format := confutil.StringNotEmpty(conf.Format, *defs.Format)
	logrus.SetReportCaller(format == "detailed")
	logrus.SetFormatter(newFormatter(format, conf, defs))
}

func newOutput(conf, defs *payrollconf.LogConfig) io.Writer {
	switch confutil.StringNotEmpty(conf.Output, *defs.Output) {
	case "file":
		fc, fd := &conf.File, &defs.File
		filename := confutil.StringNotEmpty(fc.Filename, *fd.Filename)
		rootLogger.Infof("Logs diverted to %s", filename)
		maxSize := confutil.ByteSize(fc.MaxSize, 0, *fd.MaxSize)
		maxAge := confutil.DurationMin(fc.MaxAge, 0, *fd.MaxAge)
		return &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    int(math.Ceil(float64(maxSize) / (1024 * 1024))),
			MaxBackups: confutil.IntMin(fc.MaxBackups, 0, *fd.MaxBackups),
			MaxAge:     int(math.Ceil(maxAge.Hours() / 24)),
			Compress:   confutil.Bool(fc.Compress, *fd.Compress),
		}
	case "stdout":
		return os.Stdout
	default:
		return os.Stderr
	}
}

func newFormatter(format string, conf, defs *payrollconf.LogConfig) logrus.Formatter {
	timeFormat := confutil.StringNotEmpty(conf.TimeFormat, *defs.TimeFormat)
	disableColor := confutil.Bool(conf.DisableColor, *defs.DisableColor)
	forceColor := confutil.Bool(conf.ForceColor, *defs.ForceColor)

	var f logrus.Formatter
	switch format {
	case "json":
		jc, jd := &conf.JSON, &defs.JSON
		f = &logrus.JSONFormatter{
			TimestampFormat: timeFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  confutil.StringNotEmpty(jc.TimestampField, *jd.TimestampField),
				logrus.FieldKeyLevel: confutil.StringNotEmpty(jc.LevelField, *jd.LevelField),
				logrus.FieldKeyMsg:   confutil.StringNotEmpty(jc.MessageField, *jd.MessageField),
				logrus.FieldKeyFunc:  confutil.StringNotEmpty(jc.FuncField, *jd.FuncField),
				logrus.FieldKeyFile:  confutil.StringNotEmpty(jc.FileField, *jd.FileField),
			},
		}
	case "detailed":
		f = &logrus.TextFormatter{
			DisableColors:   disableColor,
			ForceColors:     forceColor,
			TimestampFormat: timeFormat,
			FullTimestamp:   true,
		}
	default:
		f = &prefixed.TextFormatter{
			DisableColors:   disableColor,
			ForceColors:     forceColor,
			TimestampFormat: timeFormat,
			ForceFormatting: true,
			FullTimestamp:   true,
		}
	}
	if confutil.Bool(conf.UTC, *defs.UTC) {
		f = utcFormatter{f}
	}
	return f
}

type utcFormatter struct {
	logrus.Formatter
}

func (u utcFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.UTC()
	return u.Formatter.Format(e)
}

// EnsureInit applies the default config once, for tests that log before any config is loaded
func EnsureInit() {
	if !configured.Load() {
		InitConfig(&payrollconf.LogConfig{})
	}
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	EnsureInit()
	return context.WithValue(ctx, ctxLogKey{}, logger)
}

// WithLogField returns a context whose logger carries the field on every line
func WithLogField(ctx context.Context, key, value string) context.Context {
	if len(value) > maxFieldLength {
		value = value[:maxFieldLength] + "..."
	}
	return WithLogger(ctx, loggerFromContext(ctx).WithField(key, value))
}

func loggerFromContext(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(ctxLogKey{}).(*logrus.Entry); ok {
		return logger
	}
	return rootLogger
}

// SetLevel accepts any logrus level name, case insensitive, and falls back to info
func SetLevel(level string) {
	l, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		l = logrus.InfoLevel
	}
	logrus.SetLevel(l)
}

func GetLevel() string {
	return logrus.GetLevel().String()
}

func IsTraceEnabled() bool {
	return logrus.IsLevelEnabled(logrus.TraceLevel)
}

