// Package mutator applies parsed parameter records to the design document.
//
// The mutator is the only place that decides whether a unit change is
// legal:
//
//	absent                   create
//	same unit                update expression in place
//	unitless → unit          delete and recreate
//	unit → different unit    delete and recreate
//	unit → unitless          InvalidConversionError
//
// It talks to the host only through ParameterStore and UnitsManager, so the
// SQLite-backed design document and test doubles are interchangeable.
// Deletes are verified by re-reading the store afterwards; a parameter that
// is still present is reported as DeleteRefusedError even if the store
// claimed success.
package mutator
