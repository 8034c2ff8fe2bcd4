// Package addin holds the explicit command registry.
//
// A Registry is built once at startup from a base command Definition cloned
// into every supported workspace. Run places each command's button on its
// host panel; Stop removes them again; Reload does both, re-creating the
// commands from the factory. There is no package-level command list.
package addin
