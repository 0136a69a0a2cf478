package platform

import "strings"

// Separator is the portable directory separator used by the core above this
// layer.
const Separator = "/"

// ToDependent concatenates prepend, dirName and suffix and rewrites every
// portable separator to sep. Backends use it to implement their
// ToDependent method with their native separator.
func ToDependent(sep, prepend, dirName, suffix string) string {
	s := prepend + dirName + suffix
	if sep == Separator {
		return s
	}
	return strings.ReplaceAll(s, Separator, sep)
}
