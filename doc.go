// Package mime is the root of a library for reading, changing, and writing
// MIME messages as trees of entities.
//
// Every message is an entity: a header and a body. A body is one of three
// things. A leaf holds content bytes, normally decoded from the transfer
// encoding named in the header. A container holds the child entities of a
// multipart body, along with the preamble and epilogue around them. An empty
// body holds nothing, or holds input that has not been read yet.
//
// The work is split up by part of a message:
//
// * header provides the ordered list of header fields, with structured
// accessors for the fields that matter to MIME: Content-Type and its
// parameters, Content-Disposition, and Content-Transfer-Encoding. The header
// package also handles dates and address lists.
//
// * transfer provides the codecs for the transfer encodings: 7bit, 8bit,
// binary, quoted-printable, base64, and x-uuencode. The decoders are lenient
// about what they accept.
//
// * message provides the parser, the entity tree, and the serializer. Use
// message.Parse to read a message, change it as you like, and then write it
// with WriteTo. A message.Buffer makes new entities.
//
// * message/walk provides tools for visiting and transforming the tree.
//
// Round-tripping is taken seriously. A message that is parsed and written
// back without changes comes out byte-for-byte identical, including odd
// line breaks, padding after delimiters, preambles, and epilogues. The only
// exception is a leaf that was decoded: its content is encoded anew when
// written, which may wrap lines differently than the original. Parse with
// message.SkipDecode when exact output matters more than decoded content.
//
// If you change one part of a message, the rest remains byte-for-byte
// identical on output, as far as can be managed.
//
// The mimetree command in tools/mimetree is a small tool for looking at
// messages from the command line.
package mime
