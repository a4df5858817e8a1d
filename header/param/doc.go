// Package param provides a tool for dealing with parameterized headers. These
// headers include the Content-Type and Content-Disposition header. In addition,
// it provides some helper methods for breaking down the MIME types that get
// set in the Content-Type header.
//
// Parsing is deliberately forgiving. Mail in the wild carries unquoted
// boundaries full of punctuation, stray semicolons and unterminated quotes. A
// Value keeps whatever it can read as ordered parameters and holds on to the
// rest as trailing text, so nothing is lost when it is written back.
package param
