// Package lexer implements the streaming CSV engine: a table-driven lexical
// machine over a growable token buffer, assembling fields into rows.
//
// A Session pulls bytes from a Source into its buffer as the machine consumes
// them. Tokens may straddle refills; the buffer keeps everything from the
// oldest live anchor onward and rebiases anchors when it compacts. Rows are
// copied out of the buffer before they are returned, so they stay valid after
// later calls.
//
// The engine never recovers from an error. The first ParseError ends the
// session and is returned by every later call to Next.
package lexer

import (
	"errors"
	"fmt"
	"io"
)

// Session is the state of one parse. It is not safe for concurrent use.
type Session struct {
	cfg     Config
	classes [256]charClass
	runs    runScanner
	src     Source
	buf     tokenBuffer
	asm     assembler
	policy  rowSepPolicy

	state    dfaState
	pos      int  // next buffer position the machine reads
	quoted   bool // open token is quoted
	line     int
	openLine int // line of the open quoted field

	rowLine    int   // line of the row being assembled
	rowOffset  int64 // input offset of the row being assembled
	lastLine   int
	lastOffset int64
	raw        string
	err        error
}

// NewSession validates cfg and returns a session reading from src.
// A nil src is an empty input.
func NewSession(src Source, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		cfg:     cfg,
		classes: newClassTable(cfg.Sep, cfg.Quote),
		runs:    newRunScanner(cfg.Sep, cfg.Quote),
		buf:     newTokenBuffer(cfg.BufferSize, cfg.MaxBufferSize, cfg.OnGrow),
		asm:     newAssembler(cfg.Quote, cfg.Encode),
	}
	s.Reset(src)
	return s, nil
}

// Reset discards all state and starts over on src with the same config.
// An owned buffer allocation is kept for reuse.
func (s *Session) Reset(src Source) {
	s.src = src
	s.buf.reset()
	s.asm.reset()
	s.policy.reset()
	s.state = stateRecordStart
	s.pos = 0
	s.quoted = false
	s.line = 1
	s.openLine = 0
	s.rowLine, s.rowOffset = 0, 0
	s.lastLine, s.lastOffset = 0, 0
	s.raw = ""
	s.err = nil

	switch p := src.(type) {
	case nil:
		s.buf.eof = true
	case payloadSource:
		s.buf.adopt(p.Payload())
	}
}

// Next returns the next row. Blank lines produce no row.
//
// Next returns io.EOF once the input is exhausted. Any other error is
// terminal and is returned again by every later call.
func (s *Session) Next() (Row, error) {
	for s.err == nil {
		if s.state == stateDone {
			s.buf.release()
			return nil, io.EOF
		}
		if s.pos == s.buf.have && !s.buf.eof {
			if err := s.refill(); err != nil {
				s.fail(err)
				break
			}
			continue
		}
		row, err := s.scan()
		if err != nil {
			s.fail(err)
			break
		}
		if row != nil {
			return row, nil
		}
	}
	return nil, s.err
}

// Close releases the buffer. Next returns io.EOF afterwards.
func (s *Session) Close() {
	s.buf.release()
	s.asm.discard()
	s.src = nil
	s.state = stateDone
}

// Line returns the current 1-based line: completed record separators plus one.
func (s *Session) Line() int {
	return s.line
}

// RowLine returns the line on which the last returned row started.
func (s *Session) RowLine() int {
	return s.lastLine
}

// RowOffset returns the input offset of the first byte of the last returned row.
func (s *Session) RowOffset() int64 {
	return s.lastOffset
}

// Separator returns the row separator fixed by the first record boundary.
func (s *Session) Separator() RowSeparator {
	return s.policy.fixed
}

// RawRow returns the raw bytes of the last returned row, without its
// separator. It is empty unless Config.RawRows is set.
func (s *Session) RawRow() string {
	return s.raw
}

func (s *Session) refill() error {
	s.pos -= s.buf.compact(s.cfg.RawRows)
	if _, err := s.buf.fill(s.src); err != nil {
		if errors.Is(err, ErrTokenTooLarge) {
			return parseError(s.line, err)
		}
		return fmt.Errorf("csv: reading input: %w", err)
	}
	return nil
}

func (s *Session) fail(err error) {
	s.err = err
	s.state = stateError
	s.asm.discard()
	s.buf.release()
}

// scan runs the machine over the current window. It returns when a row is
// complete, the machine stops, or the window is used up.
func (s *Session) scan() (Row, error) {
	data, have := s.buf.data, s.buf.have
	for {
		p := s.pos
		class := classEOF
		if p < have {
			switch s.state {
			case stateUnquoted:
				if n := s.runs.plainRun(data[p:have]); n > 0 {
					s.pos += n
					continue
				}
			case stateQuoted:
				if n := s.runs.quotedRun(data[p:have]); n > 0 {
					s.pos += n
					continue
				}
			}
			class = s.classes[data[p]]
		} else if !s.buf.eof {
			return nil, nil
		}

		t := dfaTransitions[s.state][class]
		s.state = t.next
		if t.action&actionReprocess == 0 {
			s.pos++
		}
		if t.action&^actionReprocess != 0 {
			row, err := s.apply(t.action, p)
			if err != nil || row != nil {
				return row, err
			}
		}
		if s.state == stateDone {
			return nil, nil
		}
	}
}

// apply performs the actions of one transition taken at buffer position p.
func (s *Session) apply(action dfaAction, p int) (Row, error) {
	b := &s.buf
	if action&actionBeginRow != 0 {
		b.anchors[anchorRowStart] = p
		s.rowLine = s.line
		s.rowOffset = b.offset(p)
	}
	if action&actionBeginToken != 0 {
		b.anchors[anchorTokenStart] = p
		s.quoted = false
	}
	if action&actionBeginQuoted != 0 {
		b.anchors[anchorTokenStart] = p
		s.quoted = true
		s.openLine = s.line
	}
	if action&actionPushToken != 0 {
		if err := s.pushToken(p); err != nil {
			return nil, err
		}
	}
	if action&actionPushNil != 0 {
		s.asm.pushNil()
	}
	if action&actionMarkCR != 0 {
		// The pending CR is held as a token so compaction keeps it.
		b.anchors[anchorTokenStart] = p
		b.anchors[anchorSepMark] = p
	}

	switch {
	case action&actionRecordLF != 0:
		return s.endRecord(p, p, p+1)
	case action&actionRecordCR != 0:
		m := b.anchors[anchorSepMark]
		return s.endRecord(m, m, m+1)
	case action&actionRecordCRLF != 0:
		m := b.anchors[anchorSepMark]
		return s.endRecord(m, m, p+1)
	case action&actionFinish != 0:
		return s.deliver(p), nil
	case action&actionIllegalQuoting != 0:
		return nil, parseError(s.line, ErrIllegalQuoting)
	case action&actionUnclosedQuote != 0:
		return nil, parseError(s.openLine, ErrUnclosedQuotedField)
	}
	return nil, nil
}

// pushToken closes the open token at p and hands it to the assembler.
func (s *Session) pushToken(p int) error {
	b := &s.buf
	b.anchors[anchorTokenEnd] = p
	tok := b.data[b.anchors[anchorTokenStart]:p]
	err := s.asm.pushToken(tok, s.quoted)
	b.anchors[anchorTokenStart] = unset
	b.anchors[anchorTokenEnd] = unset
	if err != nil {
		return parseError(s.line, fmt.Errorf("%w: %w", ErrTranscode, err))
	}
	return nil
}

// endRecord checks the separator span data[from:to] against the fixed row
// separator, then delivers the row ending at rowEnd.
func (s *Session) endRecord(rowEnd, from, to int) (Row, error) {
	b := &s.buf
	if !s.policy.accept(b.data[from:to]) {
		return nil, parseError(s.line, ErrInconsistentRowSeparator)
	}
	row := s.deliver(rowEnd)
	s.line++
	b.anchors[anchorTokenStart] = unset
	b.anchors[anchorSepMark] = unset
	return row, nil
}

// deliver takes the assembled row, or nil if the row has no fields.
func (s *Session) deliver(rowEnd int) Row {
	b := &s.buf
	rs := b.anchors[anchorRowStart]
	b.anchors[anchorRowStart] = unset
	row := s.asm.take()
	if row == nil {
		return nil
	}
	s.lastLine, s.lastOffset = s.rowLine, s.rowOffset
	if s.cfg.RawRows && rs != unset {
		s.raw = string(b.data[rs:rowEnd])
	}
	return row
}
