package terminal

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type parseState int

const (
	stGround parseState = iota
	stEsc
	stCharset
	stCSI
	stOSC
	stOSCEsc
)

const (
	maxOSC    = 4096
	maxParams = 64
)

var ansiEscapeRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]|\x1b\].*?(?:\x07|\x1b\\)`)

// stripANSI removes ANSI escape sequences from a string
func stripANSI(s string) string {
	return ansiEscapeRegex.ReplaceAllString(s, "")
}

// parser applies a pty byte stream to a screen. State survives between
// feed calls, so sequences and runes split across reads come out whole.
type parser struct {
	state  parseState
	params []byte
	osc    []byte
	utf    []byte
}

// feed applies data and returns the last title set by OSC 0 or OSC 2, if
// any.
func (p *parser) feed(s *screen, data []byte) (title string, ok bool) {
	for _, b := range data {
		switch p.state {
		case stGround:
			p.ground(s, b)
		case stEsc:
			p.escape(b)
		case stCharset:
			p.state = stGround
		case stCSI:
			switch {
			case b >= 0x40 && b <= 0x7e:
				p.csi(s, b)
				p.state = stGround
			case b >= 0x20 && b <= 0x3f:
				if len(p.params) < maxParams {
					p.params = append(p.params, b)
				}
			default:
				p.state = stGround
			}
		case stOSC:
			switch b {
			case 0x07:
				if t, found := p.finishOSC(); found {
					title, ok = t, true
				}
			case 0x1b:
				p.state = stOSCEsc
			default:
				if len(p.osc) < maxOSC {
					p.osc = append(p.osc, b)
				}
			}
		case stOSCEsc:
			if t, found := p.finishOSC(); found {
				title, ok = t, true
			}
			if b != '\\' {
				p.escape(b)
			}
		}
	}
	return title, ok
}

func (p *parser) ground(s *screen, b byte) {
	switch b {
	case 0x1b:
		p.utf = p.utf[:0]
		p.state = stEsc
		return
	case '\n':
		s.newline()
		return
	case '\r':
		s.carriageReturn()
		return
	case '\b':
		s.back(1)
		return
	case '\t':
		s.tab()
		return
	}
	if b < 0x20 || b == 0x7f {
		return
	}

	p.utf = append(p.utf, b)
	for len(p.utf) > 0 && utf8.FullRune(p.utf) {
		r, size := utf8.DecodeRune(p.utf)
		p.utf = p.utf[size:]
		s.put(r)
	}
}

func (p *parser) escape(b byte) {
	switch b {
	case '[':
		p.params = p.params[:0]
		p.state = stCSI
	case ']':
		p.osc = p.osc[:0]
		p.state = stOSC
	case '(', ')', '*', '+':
		p.state = stCharset
	default:
		p.state = stGround
	}
}

func (p *parser) csi(s *screen, final byte) {
	params := string(p.params)
	if strings.ContainsAny(params, "<=>?") {
		return
	}
	n := firstParam(params, 1)
	switch final {
	case 'C':
		s.forward(max(n, 1))
	case 'D':
		s.back(max(n, 1))
	case 'G':
		s.column(n - 1)
	case 'H', 'f':
		s.column(0)
	case 'K':
		s.eraseLine(firstParam(params, 0))
	case 'J':
		s.eraseDisplay(firstParam(params, 0))
	case 'P':
		s.deleteChars(max(n, 1))
	case '@':
		s.insertBlanks(max(n, 1))
	}
}

// firstParam returns the leading numeric parameter, capped at
// maxLineWidth since every count here is in columns.
func firstParam(params string, def int) int {
	head, _, _ := strings.Cut(params, ";")
	if head == "" {
		return def
	}
	n, err := strconv.Atoi(head)
	switch {
	case errors.Is(err, strconv.ErrRange):
		return maxLineWidth
	case err != nil:
		return def
	}
	return min(n, maxLineWidth)
}

func (p *parser) finishOSC() (string, bool) {
	p.state = stGround
	code, text, found := strings.Cut(string(p.osc), ";")
	if !found || (code != "0" && code != "2") {
		return "", false
	}
	return sanitizeTitle(text), true
}

func sanitizeTitle(s string) string {
	s = stripANSI(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == utf8.RuneError {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
