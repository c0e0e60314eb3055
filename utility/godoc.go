// Package utility provides small generic helpers shared by the lazyalgo
// adapters: slice mapping, JSON decoding with generics and pointer helpers.
//
// The algorithm packages themselves do not depend on it.
package utility
