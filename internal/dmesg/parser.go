// Package dmesg reconstructs GPU command buffers from a kernel-log capture.
//
// The mlog kernel patches dump every submitted command buffer into dmesg as a
// header line followed by fixed-width hex data lines, with top-level and
// sub-submission sessions interleaved. The parser runs a single forward pass
// over the lines, keeping at most one buffer open at a time and validating
// that each data line continues exactly where the previous one left off.
package dmesg

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	mainHdrPattern  = regexp.MustCompile(`@MF@ dumping IB gpu=([0-9a-fA-F]+) host=[0-9a-fA-F]+ .*ib=([0-9]+) ic=`)
	mainDataPattern = regexp.MustCompile(`@MF@ ib=[0-9]+ ic=[0-9]+ >([0-9a-fA-F]+):(.*)`)
	subHdrPattern   = regexp.MustCompile(`@MF@ dumping sub IB gpu=([0-9a-fA-F]+) host=`)
	subDataPattern  = regexp.MustCompile(`@MF@ ib=[0-9]+ sub=[0-9a-fA-F]+ >([0-9a-fA-F]+):(.*)`)
)

// The four shapes are textually similar but mutually exclusive. They are
// tried in this fixed order and the first match wins.
var patterns = []struct {
	re *regexp.Regexp
	fn func(p *Parser, m []string, line string) error
}{
	{mainHdrPattern, (*Parser).processMainHdr},
	{mainDataPattern, (*Parser).processData},
	{subHdrPattern, (*Parser).processSubHdr},
	{subDataPattern, (*Parser).processData},
}

// Parser turns a raw dmesg line stream into an ordered buffer collection.
// Buffers appear in the collection in the order their sessions complete in
// the input; that order is significant to the rd encoder.
type Parser struct {
	cur  *Buffer
	bufs []*Buffer
}

func NewParser() *Parser {
	return &Parser{}
}

// Parse consumes r line by line and returns the finalized buffer collection.
// The first truncation or corruption error stops processing immediately.
func (p *Parser) Parse(r io.Reader) ([]*Buffer, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := p.ProcessLine(strings.TrimSpace(scanner.Text())); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p.Finish(), nil
}

// ProcessLine matches line against the recognized shapes in priority order.
// Lines matching none of them are unrelated kernel chatter and are ignored.
func (p *Parser) ProcessLine(line string) error {
	for _, pat := range patterns {
		if m := pat.re.FindStringSubmatch(line); m != nil {
			return pat.fn(p, m, line)
		}
	}
	return nil
}

// Finish finalizes any still-open buffer, exactly as the next header line
// would, and returns the ordered collection.
func (p *Parser) Finish() []*Buffer {
	p.closeBuffer()
	return p.bufs
}

// closeBuffer moves the open buffer, if any, into the output collection.
// A finalized buffer is never revisited.
func (p *Parser) closeBuffer() {
	if p.cur != nil {
		p.bufs = append(p.bufs, p.cur)
		p.cur = nil
	}
}

func (p *Parser) processMainHdr(m []string, line string) error {
	return p.openBuffer(m[1], true, line)
}

func (p *Parser) processSubHdr(m []string, line string) error {
	return p.openBuffer(m[1], false, line)
}

func (p *Parser) openBuffer(addr string, topLevel bool, line string) error {
	p.closeBuffer()
	gpuaddr, err := parseHex32(addr, line)
	if err != nil {
		return err
	}
	p.cur = &Buffer{Addr: gpuaddr, TopLevel: topLevel}
	return nil
}

// processData appends the words of one data line to the open buffer after
// checking that its declared offset continues the buffer without a gap.
func (p *Parser) processData(m []string, line string) error {
	if p.cur == nil {
		return fmt.Errorf("%w: %q", ErrNoOpenBuffer, line)
	}
	off, err := parseHex32(m[1], line)
	if err != nil {
		return err
	}
	if off != p.cur.ByteLen() {
		return &OffsetMismatchError{Expected: p.cur.ByteLen(), Got: off, Line: line}
	}
	for _, tok := range strings.Fields(m[2]) {
		word, err := parseHex32(tok, line)
		if err != nil {
			return err
		}
		p.cur.Append(word)
	}
	return nil
}

func parseHex32(s, line string) (uint32, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, &MalformedNumberError{Token: s, Line: line, err: err}
	}
	return uint32(v), nil
}
