package ir

import "golang.org/x/text/unicode/norm"

// CanonicalName returns the NFC normalization of a function or block name.
//
// Mangled symbols can reach us with differently-composed Unicode depending
// on the front end that produced the module. Descriptive-table rows and
// store records always carry canonical names so two labelings of the same
// program compare byte-identical.
func CanonicalName(name string) string {
	if norm.NFC.IsNormalString(name) {
		return name
	}
	return norm.NFC.String(name)
}
