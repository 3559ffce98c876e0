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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelFor(t *testing.T) {
	for _, workers := range []int{-1, 0, 1, 3, 64} {
		n := 100
		hits := make([]int, n)
		ParallelFor(n, workers, func(i int) {
			hits[i]++
		})
		for i, h := range hits {
			assert.Equal(t, 1, h, "index %d with %d workers", i, workers)
		}
	}
}

func TestParallelFor_Empty(t *testing.T) {
	called := false
	ParallelFor(0, 4, func(int) { called = true })
	assert.False(t, called)
}
