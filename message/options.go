package message

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/zostay/go-mime/transfer"
)

// Constants related to Parse() options.
const (
	// DefaultMaxDepth is the default depth the parser will recurse into a
	// message.
	DefaultMaxDepth = 32

	// DefaultChunkSize is the default size of the buffer used to read input.
	// This could change at any time.
	DefaultChunkSize = 16_384

	// DefaultMaxHeaderLength is the default maximum byte length of a header.
	// Zero means there is no limit.
	DefaultMaxHeaderLength = 0
)

// discardLogger is the default logger: anomalies go nowhere unless the caller
// asks for them with WithLogger.
var discardLogger = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

type parser struct {
	mask         Mask
	maxDepth     int
	maxHeaderLen int
	chunkSize    int
	reg          *transfer.Registry
	logger       logrus.FieldLogger

	// warn is the first non-fatal error to report when the parse finishes.
	warn error
}

func (pr *parser) clone() *parser {
	p := *pr
	p.warn = nil
	return &p
}

func newParser(opts []ParseOption) *parser {
	pr := &parser{
		mask:         MaskNone,
		maxDepth:     DefaultMaxDepth,
		maxHeaderLen: DefaultMaxHeaderLength,
		chunkSize:    DefaultChunkSize,
		reg:          transfer.DefaultRegistry,
		logger:       discardLogger,
	}

	for _, opt := range opts {
		opt(pr)
	}

	return pr
}

// ParseOption refers to options that may be passed to the Parse function to
// modify how the parser works.
type ParseOption func(pr *parser)

// WithMask is a ParseOption that selects parts of the parse to skip.
func WithMask(m Mask) ParseOption {
	return func(pr *parser) { pr.mask = m }
}

// WithMaxDepth is a ParseOption that controls how deep the parser will go in
// recursively parsing a multipart message. The top-level entity is at depth
// 0, so a value of 0 keeps even a top-level multipart body as raw bytes. A
// negative value means there is no limit. This is set to DefaultMaxDepth by
// default.
func WithMaxDepth(maxDepth int) ParseOption {
	return func(pr *parser) { pr.maxDepth = maxDepth }
}

// WithUnlimitedDepth is a ParseOption that will allow the parser to parse
// sub-parts of any depth. Only use this with input you trust.
func WithUnlimitedDepth() ParseOption {
	return func(pr *parser) { pr.maxDepth = -1 }
}

// WithMaxHeaderLength is a ParseOption that sets the largest header, in bytes,
// the parser will read before failing with ErrLargeHeader. Setting this to a
// value less than or equal to 0 will result in there being no maximum length.
func WithMaxHeaderLength(n int) ParseOption {
	return func(pr *parser) { pr.maxHeaderLen = n }
}

// WithChunkSize is a ParseOption that controls how many bytes to read at a time
// while parsing a stream. The default chunk size is DefaultChunkSize.
func WithChunkSize(chunkSize int) ParseOption {
	return func(pr *parser) { pr.chunkSize = chunkSize }
}

// WithRegistry is a ParseOption that selects the codecs used to decode leaf
// bodies. The default is transfer.DefaultRegistry.
func WithRegistry(reg *transfer.Registry) ParseOption {
	return func(pr *parser) { pr.reg = reg }
}

// WithLogger is a ParseOption that sets where the anomalies the parser
// recovers from are reported. By default nothing is reported.
func WithLogger(logger logrus.FieldLogger) ParseOption {
	return func(pr *parser) { pr.logger = logger }
}
