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

// Package t64 reads and writes T64 tape containers. A T64 container is a
// directory of files rather than a recording of a tape.
//
// The format is:
//
//	offset  size  description
//	0       32    signature beginning with "C64"
//	32      2     version (little-endian)
//	34      2     maximum number of entries
//	36      2     number of used entries
//	38      2     unused
//	40      24    container name, padded with spaces
//	64      32*n  directory entries
//
// Each directory entry is:
//
//	offset  size  description
//	0       1     entry type (0 = free, 1 = normal tape file)
//	1       1     file type
//	2       2     start address (little-endian)
//	4       2     end address (little-endian)
//	6       2     unused
//	8       4     offset of the file data in the container (little-endian)
//	12      4     unused
//	16      16    file name, padded with spaces
package t64
