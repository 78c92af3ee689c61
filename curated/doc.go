// This file is part of Gopher1541.
//
// Gopher1541 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher1541 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher1541.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function, which looks like the Errorf() function in the fmt
// package.
//
// The pattern string given to Errorf() identifies the error. Sentinel
// patterns are stored as exported const strings in the package that raises
// them. For example, the via package declares:
//
//	const UndefinedRegister = "via: undefined register: %#02x"
//
// and a caller can test for that condition with:
//
//	if curated.Is(err, via.UndefinedRegister) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs anywhere in
// the error chain. A chain is formed when a curated error is one of the
// values given to another call to Errorf().
//
// The Error() function normalises the message so that duplicate adjacent
// parts are removed. Parts are separated by the sub-string ": ". This means
// that a function can freely wrap an error with its own prefix without
// worrying that the caller has done the same.
//
//	drive: drive: write mode is not supported
//
// is reported as:
//
//	drive: write mode is not supported
//
// Curated errors also support the Unwrap() convention of the errors package.
// The first value that is itself an error is the wrapped error.
package curated
