package assets

import _ "embed"

// Readme is the game mechanics document shown by the help overlay.
//
//go:embed readme.md
var Readme string
