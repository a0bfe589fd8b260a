// Package preset defines the static effect catalog: each preset names an
// ordered chain of engine filter stages. The catalog is immutable and safe for
// unrestricted concurrent reads.
package preset
