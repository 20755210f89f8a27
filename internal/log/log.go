// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log holds the application-wide logger. Progress and
// diagnostic output goes to stderr so that stdout stays reserved for
// serialized advisory data.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l
}

// Setup configures the global logger verbosity. With quiet set, only
// warnings and errors are emitted; verbose enables debug output.
func Setup(quiet, verbose bool) {
	switch {
	case quiet:
		logger.SetLevel(logrus.WarnLevel)
	case verbose:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Warnf logs a formatted message at warning level.
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}
