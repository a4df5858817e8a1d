// Package transfer contains utilities related to encoding and decoding transfer
// encodings, which interpret the Content-Transfer-Encoding header to apply
// certain 8bit to 7bit encodings. The quoted-printable, base64 and x-uuencode
// encodings transform content. The binary, 7bit and 8bit encodings leave the
// bytes as-is.
//
// For the sake of this module, the term "decoded" means that the content has
// been transformed from the named Content-Transfer-Encoding to the charset
// encoded form. Meanwhile, "encoded" means that the content has been
// transformed from the charset encoding to the named Content-Transfer-Encoding.
//
// Every encoder and decoder streams. Decoders are lenient: they do their best
// with damaged input and never fail on bad data, only on a failed read.
package transfer
