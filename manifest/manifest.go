// Package manifest reads, writes and verifies checksum manifests in the
// cksum output format: "<sum> <length> <name>" per line, the name optional
// for streams without one.
package manifest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/cksum"
)

// Entry is one manifest line.
type Entry struct {
	Sum    uint32
	Length uint64
	Name   string
}

// String renders the two-field form without the name.
func (e Entry) String() string {
	return fmt.Sprintf("%d %d", e.Sum, e.Length)
}

// FormatEntry renders one manifest line terminated by delim ('\n' normally,
// 0 for NUL-delimited output).
func FormatEntry(e Entry, delim byte) string {
	if e.Name == "" {
		return fmt.Sprintf("%d %d%c", e.Sum, e.Length, delim)
	}
	return fmt.Sprintf("%d %d %s%c", e.Sum, e.Length, e.Name, delim)
}

// ParseLine parses one manifest line. Names may contain spaces; only the
// first two fields are structural.
func ParseLine(line string) (Entry, error) {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 3)
	if len(fields) < 2 {
		return Entry{}, fmt.Errorf("manifest: malformed line %q", line)
	}
	sum, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return Entry{}, fmt.Errorf("manifest: bad checksum in %q: %w", line, err)
	}
	length, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("manifest: bad length in %q: %w", line, err)
	}
	e := Entry{Sum: uint32(sum), Length: length}
	if len(fields) == 3 {
		e.Name = fields[2]
	}
	return e, nil
}

// Parse reads a whole manifest. Blank lines are skipped; a malformed line
// fails the parse with its line number.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		e, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Write renders entries to w, one line each.
func Write(w io.Writer, entries []Entry, delim byte) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.WriteString(FormatEntry(e, delim)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// VerifyResult is the outcome of re-checking one entry.
type VerifyResult struct {
	Entry  Entry
	Actual cksum.Result
	OK     bool
	Err    error
}

// Verify recomputes every named entry through the streaming driver and
// compares checksum and length. Mismatches and per-entry I/O failures are
// reported in the result slice, never dropped. Entries run concurrently
// under the configured concurrency via SumFiles semantics; results keep
// entry order.
func Verify(ctx context.Context, entries []Entry, opts ...cksum.Option) []VerifyResult {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	computed := cksum.SumFiles(ctx, names, opts...)

	results := make([]VerifyResult, len(entries))
	for i, e := range entries {
		vr := VerifyResult{Entry: e, Actual: computed[i].Result, Err: computed[i].Err}
		vr.OK = vr.Err == nil && vr.Actual.Sum == e.Sum && vr.Actual.Length == e.Length
		results[i] = vr
	}
	return results
}
