// Package header provides low-level and high-level tooling for dealing with
// MIME entity headers. If you need low-level access, you want to deal with
// methods that work with field.Field objects. However, it is generally expected
// that devs will prefer the high-level methods which will try to keep your
// reading and manipulation of the header safe and strictly correct on output.
//
// The provided Parse() method will parse up headers in a flexible way that is
// built on top of field.Parse() to preserve headers as-is for output. A header
// that is read and not modified is written back byte-for-byte, including any
// junk found before the first field and the blank line that ended it.
//
// Values derived from fields, such as the param.Value of the Content-Type
// field, are cached. The cache is checked against the field text on every
// read, so it is always safe to edit fields directly.
package header
