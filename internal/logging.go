/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package internal

import (
	"os"

	"github.com/op/go-logging"
)

var stderrFormat = logging.MustStringFormatter(
	`%{color}%{module} ▶ %{level:.4s} %{message}%{color:reset}`,
)

// SetupLogging configures a stderr logger for one of the command
// line tools. The level defaults to defaultLevel and can be raised
// or lowered through the GSW_LOG_LEVEL environment variable.
func SetupLogging(prefix string, defaultLevel logging.Level) *logging.Logger {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetFormatter(stderrFormat)

	leveled := logging.AddModuleLevel(backend)
	switch os.Getenv("GSW_LOG_LEVEL") {
	case "CRITICAL":
		leveled.SetLevel(logging.CRITICAL, prefix)
	case "ERROR":
		leveled.SetLevel(logging.ERROR, prefix)
	case "WARNING":
		leveled.SetLevel(logging.WARNING, prefix)
	case "NOTICE":
		leveled.SetLevel(logging.NOTICE, prefix)
	case "INFO":
		leveled.SetLevel(logging.INFO, prefix)
	case "DEBUG":
		leveled.SetLevel(logging.DEBUG, prefix)
	default:
		leveled.SetLevel(defaultLevel, prefix)
	}
	logging.SetBackend(leveled)

	return logging.MustGetLogger(prefix)
}
