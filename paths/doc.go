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

// Package paths prepares paths to gopher1541 resources, such as the
// configuration file.
//
// The policy of ResourcePath() is simple: if the base resource path,
// ".gopher1541", is present in the program's current directory then that is
// the base path that will be used. If it is not present then the user's config
// directory is used, as returned by os.UserConfigDir(). For example, on a
// modern Linux system:
//
//	paths.ResourcePath("gopher1541.yaml")
//
// returns:
//
//	/home/user/.config/gopher1541/gopher1541.yaml
package paths
