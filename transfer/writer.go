package transfer

import "io"

// writer is an internal helper to make wrapping easier.
type writer struct {
	io.Writer
	io.Closer
}

// Close will close the nested closer, if there is one.
func (w *writer) Close() error {
	if w.Closer != nil {
		return w.Closer.Close()
	}
	return nil
}

// lineWrapper splits everything written to it into lines of a fixed length.
// The break goes between lines only, never after the last one.
type lineWrapper struct {
	every int
	acc   int
	lbr   []byte
	w     io.Writer
}

func (lw *lineWrapper) Write(b []byte) (int, error) {
	n := 0
	for len(b) > 0 {
		if lw.acc == lw.every {
			if _, err := lw.w.Write(lw.lbr); err != nil {
				return n, err
			}
			lw.acc = 0
		}

		chunk := lw.every - lw.acc
		if chunk > len(b) {
			chunk = len(b)
		}

		wn, err := lw.w.Write(b[:chunk])
		n += wn
		lw.acc += wn
		if err != nil {
			return n, err
		}

		b = b[chunk:]
	}
	return n, nil
}
