package message

import (
	"errors"

	"github.com/zostay/go-mime/transfer"
)

// Anomalies the parser recovers from. Parse does not return these; they are
// reported to the logger at debug level, each with the best-effort tree the
// parser built around the problem.
var (
	// ErrMalformedHeader is logged when the input ends before the blank line
	// that ends a header. Everything read is kept as the header and the body
	// is empty.
	ErrMalformedHeader = errors.New("the header is not terminated by a blank line")

	// ErrMissingBoundary is logged when a multipart entity has no boundary
	// parameter. The body is kept as a leaf holding the raw bytes.
	ErrMissingBoundary = errors.New("the boundary parameter is missing from Content-Type")

	// ErrTruncatedMultipart is logged when the input ends before the closing
	// delimiter of a multipart body. The parts read so far are kept and the
	// body has no epilogue.
	ErrTruncatedMultipart = errors.New("the multipart body has no closing delimiter")

	// ErrUnsupportedEncoding is logged when a leaf names a transfer encoding
	// with no codec. The raw bytes are kept.
	ErrUnsupportedEncoding = transfer.ErrUnsupportedEncoding
)

// Errors returned by Parse.
var (
	// ErrMaxDepth is returned by Parse, along with the tree, when a multipart
	// entity is nested deeper than the configured maximum. The entity at the
	// limit is kept as a leaf holding the raw bytes of its body.
	ErrMaxDepth = errors.New("multipart entities are nested too deeply")

	// ErrLargeHeader is returned by Parse when a header is longer than the
	// configured WithMaxHeaderLength option.
	ErrLargeHeader = errors.New("the header exceeds the maximum parse length")
)
