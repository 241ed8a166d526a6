// Copyright 2023 The Shac Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reporting

// Efficient ANSI code support.

// ansiCode is one of the ANSI escape code.
//
// It only represents the few codes used by the reporters.
//
// https://en.wikipedia.org/wiki/ANSI_escape_code#SGR_.28Select_Graphic_Rendition.29_parameters
//
// The colors vary a lot across terminals, this table is very useful to
// understand the contrast ratios.
// https://en.wikipedia.org/wiki/ANSI_escape_code#3-bit_and_4-bit
type ansiCode int

func (a ansiCode) String() string {
	return ansiCodeMap[a]
}

const (
	// Styling codes.
	reset ansiCode = iota
	bold
	faint

	// Foreground colors.
	fgRed ansiCode = iota + 28
	fgGreen
	fgYellow

	// Bright foreground colors.
	fgHiBlue ansiCode = iota + 88
	fgHiMagenta
	fgHiCyan
)

var ansiCodeMap = map[ansiCode]string{
	reset:       "\x1b[0m",
	bold:        "\x1b[1m",
	faint:       "\x1b[2m",
	fgRed:       "\x1b[31m",
	fgGreen:     "\x1b[32m",
	fgYellow:    "\x1b[33m",
	fgHiBlue:    "\x1b[94m",
	fgHiMagenta: "\x1b[95m",
	fgHiCyan:    "\x1b[96m",
}
