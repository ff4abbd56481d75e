// Package codegen provides identifier names shared by the generated matchers.
package codegen

import (
	"fmt"
	"go/types"
	"unicode"
	"unicode/utf8"
)

// Variable names used in generated code
const (
	InputName   = "input"
	CharName    = "c"
	SizeName    = "size"
	CurrentName = "current"
	NextName    = "next"
	SetsName    = "sets"
)

// Package-level tables emitted for the table engine
const (
	LabelsTable   = "Labels"
	ClosuresTable = "Closures"
	StartTable    = "Start"
	AcceptConst   = "Accept"
	SetPool       = "SetPool"
	StepFunc      = "Step"
)

// Packages imported by generated files, and the local names their code
// declares. A matcher type with one of these names would not compile.
var generatedNames = map[string]bool{
	"sync": true, "utf8": true, "testing": true,
	InputName: true, CharName: true, SizeName: true,
	CurrentName: true, NextName: true, SetsName: true,
	"alive": true, "s": true, "on": true,
	"tests": true, "tt": true, "got": true, "t": true,
	"b": true, "i": true, "in": true, "inputs": true,
	"_": true,
}

// IsReserved reports whether name cannot be used as a generated type name:
// it is predeclared (bool, clear, uint64, ...) or used by generated code.
func IsReserved(name string) bool {
	return generatedNames[name] || types.Universe.Lookup(name) != nil
}

// TableName returns the unexported package-level name of a table that
// belongs to the matcher called name, e.g. TableName("Email", "Labels")
// is "emailLabels".
func TableName(name, table string) string {
	return LowerFirst(name) + table
}

// StateComment labels the transition emitted for a state.
func StateComment(id int, label rune) string {
	return fmt.Sprintf("state %d on %q", id, label)
}

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	return mapFirst(s, unicode.ToLower)
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	return mapFirst(s, unicode.ToUpper)
}

func mapFirst(s string, f func(rune) rune) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(f(r)) + s[size:]
}
