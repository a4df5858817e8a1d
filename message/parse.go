package message

import (
	"bytes"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/zostay/go-mime/header"
	"github.com/zostay/go-mime/internal/scanner"
	"github.com/zostay/go-mime/transfer"
)

// Parse will consume input from the given reader and return the entity tree
// it holds. The input is read a line at a time, exactly once, front to back.
//
// Parsing proceeds in three steps for every entity, starting with the
// top-level message:
//
// 1. The header is read up to the first blank line and broken into fields.
//
// 2. The Content-Type decides what sort of body follows. A multipart type
// with a boundary parameter gets a *Container body. Anything else gets a
// *Leaf body holding the content decoded according to the
// Content-Transfer-Encoding.
//
// 3. For a multipart body, the bytes before the first delimiter are kept as
// the preamble. The bytes between each pair of delimiters are parsed as a
// child entity, starting over at step 1. The bytes after the closing
// delimiter are kept as the epilogue.
//
// A delimiter is a line holding "--" and the boundary, with a trailing "--"
// on the closing delimiter. Spaces and tabs may follow on the same line.
// The line break before a delimiter is part of the delimiter, not of the part
// before it.
//
// Input that is not quite right does not stop the parse. A header that never
// ends, a multipart entity without a boundary, a multipart body without a
// closing delimiter, and an unknown transfer encoding are all handled as well
// as can be and logged at debug level to the logger set by WithLogger. See
// ErrMalformedHeader, ErrMissingBoundary, ErrTruncatedMultipart, and
// ErrUnsupportedEncoding.
//
// Parse only fails when reading the input fails or a header is longer than
// WithMaxHeaderLength permits. If the entities are nested deeper than
// WithMaxDepth permits, the tree is returned with ErrMaxDepth.
//
// The WithMask option may be used to skip parts of this work.
func Parse(r io.Reader, opts ...ParseOption) (*Entity, error) {
	pr := newParser(opts)
	return pr.parseRoot(scanner.NewSource(r, pr.chunkSize))
}

// ParseBytes works just like Parse, but parses the given bytes. The tree
// holds copies of the bytes it needs, so the input may be reused afterwards.
func ParseBytes(b []byte, opts ...ParseOption) (*Entity, error) {
	pr := newParser(opts)
	return pr.parseRoot(scanner.NewSlice(b))
}

// ParseString works just like Parse, but parses the given string.
func ParseString(s string, opts ...ParseOption) (*Entity, error) {
	return ParseBytes([]byte(s), opts...)
}

func (pr *parser) parseRoot(src scanner.LineReader) (*Entity, error) {
	e, err := pr.parseEntity(src, 0)
	if err != nil {
		return e, err
	}
	return e, pr.warn
}

func (pr *parser) log(depth int) logrus.FieldLogger {
	return pr.logger.WithField("depth", depth)
}

// readHeader reads lines up to and including the first blank line. It
// returns false if the input ended first.
func (pr *parser) readHeader(src scanner.LineReader) ([]byte, bool, error) {
	buf := &bytes.Buffer{}
	for {
		line, err := src.Line()
		if err == io.EOF {
			return buf.Bytes(), false, nil
		} else if err != nil {
			return nil, false, fmt.Errorf("unable to read header: %w", err)
		}

		buf.Write(line)
		if pr.maxHeaderLen > 0 && buf.Len() > pr.maxHeaderLen {
			return nil, false, ErrLargeHeader
		}

		if header.IsBlankLine(line) {
			return buf.Bytes(), true, nil
		}
	}
}

// parseEntity parses one entity from src, reading all of it.
func (pr *parser) parseEntity(src scanner.LineReader, depth int) (*Entity, error) {
	counter := &scanner.Counter{LineReader: src}

	block, terminated, err := pr.readHeader(counter)
	if err != nil {
		return nil, err
	}

	lb := header.DetectBreak(block)

	var h *header.Header
	if pr.mask&SkipHeader != 0 {
		h = header.Verbatim(block, lb)
	} else {
		h, err = header.Parse(block, lb)
		if h == nil {
			return nil, err
		}
		if err != nil {
			pr.log(depth).WithError(err).Debug("kept text found before the first header field")
		}
	}

	e := &Entity{Header: *h}
	switch {
	case !terminated:
		pr.log(depth).WithError(ErrMalformedHeader).Debug("input ended inside the header")
		e.body = &Leaf{
			encoding: h.TransferEncoding(),
			encoded:  true,
			reg:      pr.reg,
		}

	case pr.mask&SkipBody != 0:
		e.body = &Empty{
			src:     counter,
			pr:      pr.clone(),
			depth:   depth,
			counter: counter,
		}

	default:
		e.body, err = pr.parseBody(counter, &e.Header, depth)
		if err != nil {
			return nil, err
		}
	}

	e.size, e.lines = counter.Bytes, counter.Lines
	return e, nil
}

// parseBody decides what sort of body follows the header and parses it.
func (pr *parser) parseBody(src scanner.LineReader, h *header.Header, depth int) (Body, error) {
	if pr.mask&SkipHeader != 0 {
		return pr.parseLeaf(src, h, depth)
	}

	ct, _ := h.GetContentType()
	if ct == nil || ct.Type() != "multipart" {
		return pr.parseLeaf(src, h, depth)
	}

	boundary := ct.Boundary()
	switch {
	case boundary == "":
		pr.log(depth).WithError(ErrMissingBoundary).Debug("kept multipart body as raw bytes")
		return pr.readRaw(src, h)

	case pr.mask&SkipChildParts != 0:
		return pr.readRaw(src, h)

	case pr.maxDepth >= 0 && depth >= pr.maxDepth:
		pr.log(depth).WithFields(logrus.Fields{
			"boundary": boundary,
			"error":    ErrMaxDepth,
		}).Debug("kept multipart body as raw bytes")
		if pr.warn == nil {
			pr.warn = ErrMaxDepth
		}
		return pr.readRaw(src, h)
	}

	return pr.parseContainer(src, boundary, depth)
}

// readAll returns all remaining lines of src joined together.
func readAll(src scanner.LineReader) ([]byte, error) {
	buf := &bytes.Buffer{}
	for {
		line, err := src.Line()
		if err == io.EOF {
			return buf.Bytes(), nil
		} else if err != nil {
			return buf.Bytes(), fmt.Errorf("unable to read body: %w", err)
		}
		buf.Write(line)
	}
}

// readRaw keeps the rest of src in a leaf as it is.
func (pr *parser) readRaw(src scanner.LineReader, h *header.Header) (*Leaf, error) {
	raw, err := readAll(src)
	if err != nil {
		return nil, err
	}

	return &Leaf{
		content:  raw,
		encoding: h.TransferEncoding(),
		encoded:  true,
		opts:     transfer.OptionsFor(h),
		reg:      pr.reg,
	}, nil
}

// parseLeaf decodes the rest of src into a leaf.
func (pr *parser) parseLeaf(src scanner.LineReader, h *header.Header, depth int) (*Leaf, error) {
	token := h.TransferEncoding()
	if pr.mask&SkipDecode != 0 {
		return pr.readRaw(src, h)
	}

	codec, err := pr.reg.Lookup(token)
	if err != nil {
		pr.log(depth).WithFields(logrus.Fields{
			"encoding": token,
			"error":    err,
		}).Debug("kept body as raw bytes")
		return pr.readRaw(src, h)
	}

	track := &wireTracker{}
	wire := io.TeeReader(scanner.NewReader(src), track)

	content := &bytes.Buffer{}
	if _, err := io.Copy(content, codec.Decoder(wire)); err != nil {
		return nil, fmt.Errorf("unable to decode body: %w", err)
	}

	// a decoder may stop before the end of the data
	if _, err := io.Copy(io.Discard, wire); err != nil {
		return nil, fmt.Errorf("unable to read body: %w", err)
	}

	opts := transfer.OptionsFor(h)
	if lbr := track.lineBreak(); lbr != nil {
		opts.Break = lbr
	}

	leaf := &Leaf{
		content:  content.Bytes(),
		encoding: token,
		opts:     opts,
		reg:      pr.reg,
	}
	if codec.DropsWhitespace {
		leaf.tail = track.tail
	}

	return leaf, nil
}

// parseContainer parses a multipart body.
func (pr *parser) parseContainer(src scanner.LineReader, boundary string, depth int) (*Container, error) {
	c := &Container{boundary: boundary}

	sect := scanner.NewSection(src, boundary)
	preamble, err := readAll(sect)
	if err != nil {
		return nil, err
	}
	if pr.mask&SkipPreamble == 0 {
		c.preamble = preamble
	}

	for sect.Kind() == scanner.Opening {
		delim := sect.Delimiter()

		sect = scanner.NewSection(src, boundary)
		part, err := pr.parseEntity(sect, depth+1)
		if err != nil {
			return nil, err
		}

		if err := sect.Drain(); err != nil {
			return nil, fmt.Errorf("unable to read body: %w", err)
		}

		c.parts = append(c.parts, part)
		c.delims = append(c.delims, delim)
	}

	if sect.Kind() != scanner.Closing {
		pr.log(depth).WithFields(logrus.Fields{
			"boundary": boundary,
			"error":    ErrTruncatedMultipart,
		}).Debug("input ended inside a multipart body")
		c.open = true
		return c, nil
	}

	c.closing = sect.Delimiter()

	epilogue, err := readAll(src)
	if err != nil {
		return nil, err
	}
	if pr.mask&SkipEpilogue == 0 {
		c.epilogue = epilogue
	}

	return c, nil
}

// wireTracker watches the wire form of a leaf body go by. It remembers the
// line break the body uses and the whitespace at its very end.
type wireTracker struct {
	crlf, lf bool
	lastCR   bool
	tail     []byte
}

func isWireSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func (t *wireTracker) Write(p []byte) (int, error) {
	for i, c := range p {
		if c == '\n' {
			t.lf = true
			if t.lastCR || (i > 0 && p[i-1] == '\r') {
				t.crlf = true
			}
		}
		t.lastCR = false
	}
	if len(p) > 0 {
		t.lastCR = p[len(p)-1] == '\r'
	}

	end := len(p)
	for end > 0 && isWireSpace(p[end-1]) {
		end--
	}
	if end == 0 {
		t.tail = append(t.tail, p...)
	} else {
		t.tail = append([]byte(nil), p[end:]...)
	}

	return len(p), nil
}

// lineBreak returns CRLF if the body had one, LF if it had a bare one, and nil
// if it had no line breaks.
func (t *wireTracker) lineBreak() []byte {
	switch {
	case t.crlf:
		return []byte("\r\n")
	case t.lf:
		return []byte("\n")
	}
	return nil
}
