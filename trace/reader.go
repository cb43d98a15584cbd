package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// A Reader parses trace entries out of a text stream, one line at a time.
type Reader struct {
	scanner    *bufio.Scanner
	lineNumber int
	closer     io.Closer
}

// NewReader creates a reader over an already-open stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
	}
}

// Open creates a reader over the trace file at path. Failures to open the
// file wrap ErrTraceSource.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTraceSource, err)
	}

	r := NewReader(file)
	r.closer = file

	return r, nil
}

// Read returns the next entry. It returns io.EOF at the end of the stream and
// a *MalformedEntryError for a line that does not parse; after the latter the
// reader has already moved past the offending line, so the caller may simply
// call Read again. Blank lines are skipped silently.
func (r *Reader) Read() (Entry, error) {
	for r.scanner.Scan() {
		r.lineNumber++

		line := r.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, reason := parseLine(line)
		if reason != "" {
			return Entry{}, &MalformedEntryError{
				LineNumber: r.lineNumber,
				Line:       line,
				Reason:     reason,
			}
		}

		return entry, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrTraceSource, err)
	}

	return Entry{}, io.EOF
}

// Close closes the underlying file, if the reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	return r.closer.Close()
}

// parseLine parses one trace line of the form `K addr[,size]`, where K is one
// of I, L, S, M and addr is unprefixed hex. Data accesses must carry a size;
// instruction fetches need not, though one is accepted if present.
func parseLine(line string) (Entry, string) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Entry{}, "expected an access kind followed by an address"
	}

	if len(fields[0]) != 1 {
		return Entry{}, "access kind must be a single character"
	}

	kind := Kind(fields[0][0])
	switch kind {
	case KindInstruction, KindLoad, KindStore, KindModify:
	default:
		return Entry{}, fmt.Sprintf("unrecognized access kind %q", fields[0])
	}

	addrField := fields[1]
	sizeField := ""
	if i := strings.IndexByte(addrField, ','); i >= 0 {
		addrField, sizeField = addrField[:i], addrField[i+1:]
	}

	if kind.IsData() && sizeField == "" {
		return Entry{}, "data access without a size"
	}

	addr, err := strconv.ParseUint(addrField, 16, 64)
	if err != nil {
		return Entry{}, fmt.Sprintf("bad address %q", addrField)
	}

	size := 0
	if sizeField != "" {
		size, err = strconv.Atoi(sizeField)
		if err != nil || size < 0 {
			return Entry{}, fmt.Sprintf("bad access size %q", sizeField)
		}
	}

	return Entry{Kind: kind, Address: addr, Size: size}, ""
}
