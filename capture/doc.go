// This file is part of zebra.
//
// zebra is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// zebra is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with zebra.  If not, see <https://www.gnu.org/licenses/>.

// Package capture supplies frames to the processing pipeline. A Source
// returns the most recent frame together with its ready state. A frame whose
// ready state is below HaveCurrentData cannot be decoded and the consumer is
// expected to skip it without complaint.
//
// Two sources are implemented in this package. The Pattern type generates a
// moving test pattern and the Sequence type plays a list of still images. The
// camera sub-package implements a Source for capture devices.
package capture
