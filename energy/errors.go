// SPDX-License-Identifier: MIT

package energy

import "errors"

// ErrDegenerate is returned when a score denominator is exactly zero, which
// happens when one population vector has no mass at all.
var ErrDegenerate = errors.New("energy: degenerate score (zero denominator)")
