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
	"errors"
)

// Sentinel errors shared by the packages of this module. Call sites
// wrap them with context via github.com/pkg/errors; the CLI tools
// log the wrapped error to stderr and exit non-zero.
var ErrConfig = errors.New("invalid combination of arguments")
var ErrIO = errors.New("input/output failure")
var ErrFormat = errors.New("malformed input")
var ErrDomain = errors.New("value outside the supported domain")
var ErrEntropy = errors.New("entropy source failure")
