package tree

import "io"

// Binary serialization is part of the node contract but has never been
// implemented; the entry points are kept so that callers can program
// against them.

// Freeze writes a binary serialization of n to w.
func Freeze(w io.Writer, n Node) error {
	return ErrNotImplemented
}

// Thaw reads a binary serialization produced by Freeze.
func Thaw(r io.Reader) (Node, error) {
	return nil, ErrNotImplemented
}
