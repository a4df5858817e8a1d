// Package message is the heart of this library. It turns MIME messages into
// trees of entities and back again.
//
// Every node of the tree is an *Entity: a header and a body. The body is one
// of three types. A *Leaf holds content, normally with the
// Content-Transfer-Encoding decoded. A *Container holds the child entities of
// a multipart body along with the bytes around them. An *Empty holds nothing,
// or input that has not been read yet.
//
// Use Parse, ParseBytes, or ParseString to read a message:
//
//	msg, err := message.Parse(in)
//	if err != nil {
//	  panic(err)
//	}
//
// Writing the entity back out with WriteTo reproduces the input byte for byte,
// so long as nothing was changed. The exception is transfer encoded content,
// which is encoded anew and may be wrapped differently than before. Parse
// with the SkipDecode mask to keep it exactly.
//
// Parsing never fails on input that is merely malformed. It builds what
// tree it can and logs what it had to work around. See the Err* variables.
//
// To make new messages, use NewLeaf, NewContainer, or a Buffer.
package message
