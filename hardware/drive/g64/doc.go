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

// Package g64 reads and writes G64 disk images. A G64 image stores the raw
// bits of each half-track of a disk, as they would be recovered by the read
// head of the drive, together with the bit-rate zone of each half-track.
//
// The format is:
//
//	offset  size     description
//	0       8        signature "GCR-1541"
//	8       1        version
//	9       1        number of half-track entries
//	10      2        maximum track size in bytes (little-endian)
//	12      4*n      track offset table (little-endian, 0 means no track)
//	12+4*n  4*n      speed zone table (little-endian)
//
// Each track begins with a two byte little-endian length followed by the
// track data. The first entry in the tables is for track 1, the second for
// track 1.5 and so on.
package g64
