package model

// Path represents a file system path.
type Path string

// RelPath is a path expressed relative to a project root. Responses leaving
// the core only ever carry RelPath values, never absolute paths.
type RelPath string
