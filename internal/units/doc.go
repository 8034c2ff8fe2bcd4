// Package units holds the unit taxonomy used to classify parameter units.
//
// A Taxonomy maps a category name (LENGTH, MASS, ...) to the set of unit
// symbols that belong to it, plus a flattened symbol set for membership
// tests. The taxonomy is built once at startup and is read-only afterwards;
// every accessor returns copies, never the internal maps.
package units
