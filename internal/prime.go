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
	"math/big"
)

// primeReps is the number of Miller-Rabin rounds used when hunting
// for primes. With the additional Baillie-PSW test performed by
// math/big this is well below a 2^-64 error probability.
const primeReps = 20

// NextPrime returns the smallest prime >= lowerBound.
// The result is a new big.Int; lowerBound is not modified.
func NextPrime(lowerBound *big.Int) *big.Int {
	p := new(big.Int).Set(lowerBound)
	if p.Cmp(big.NewInt(2)) <= 0 {
		return big.NewInt(2)
	}
	// make the candidate odd
	if p.Bit(0) == 0 {
		p.Add(p, big.NewInt(1))
	}
	two := big.NewInt(2)
	for !p.ProbablyPrime(primeReps) {
		p.Add(p, two)
	}

	return p
}
