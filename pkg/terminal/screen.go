package terminal

// screen is a line-oriented view of the program's output. It follows the
// cursor within the current line only; there is no row addressing.
// maxLineWidth bounds both the cursor column and the length of a line.
// Output past it is dropped.
const maxLineWidth = 4096

type screen struct {
	lines      []string
	cur        []rune
	col        int
	scrollback int
}

func newScreen(scrollback int) screen {
	return screen{scrollback: scrollback}
}

func (s *screen) put(r rune) {
	if s.col >= maxLineWidth {
		return
	}
	for len(s.cur) < s.col {
		s.cur = append(s.cur, ' ')
	}
	if s.col < len(s.cur) {
		s.cur[s.col] = r
	} else {
		s.cur = append(s.cur, r)
	}
	s.col++
}

func (s *screen) newline() {
	s.lines = append(s.lines, string(s.cur))
	if over := len(s.lines) - s.scrollback; over > 0 {
		s.lines = append(s.lines[:0], s.lines[over:]...)
	}
	s.cur = s.cur[:0]
	s.col = 0
}

func (s *screen) carriageReturn() { s.col = 0 }

func (s *screen) back(n int) {
	s.col -= n
	if s.col < 0 {
		s.col = 0
	}
}

func (s *screen) forward(n int) { s.column(s.col + n) }

func (s *screen) column(n int) {
	s.col = min(max(n, 0), maxLineWidth)
}

func (s *screen) tab() { s.column(s.col + 8 - s.col%8) }

// eraseLine follows CSI K: 0 cursor to end, 1 start to cursor, 2 whole line.
func (s *screen) eraseLine(mode int) {
	switch mode {
	case 0:
		if s.col < len(s.cur) {
			s.cur = s.cur[:s.col]
		}
	case 1:
		for i := 0; i <= s.col && i < len(s.cur); i++ {
			s.cur[i] = ' '
		}
	case 2:
		s.cur = s.cur[:0]
	}
}

// eraseDisplay follows CSI J for modes 2 and 3; partial erases only clear
// the current line since rows are not addressable.
func (s *screen) eraseDisplay(mode int) {
	switch mode {
	case 2, 3:
		s.lines = nil
		s.cur = s.cur[:0]
	default:
		s.eraseLine(mode)
	}
}

func (s *screen) deleteChars(n int) {
	if s.col >= len(s.cur) {
		return
	}
	end := s.col + n
	if end > len(s.cur) {
		end = len(s.cur)
	}
	s.cur = append(s.cur[:s.col], s.cur[end:]...)
}

func (s *screen) insertBlanks(n int) {
	if s.col >= len(s.cur) {
		return
	}
	n = min(n, maxLineWidth-s.col)
	if n <= 0 {
		return
	}
	blanks := make([]rune, n)
	for i := range blanks {
		blanks[i] = ' '
	}
	s.cur = append(s.cur[:s.col], append(blanks, s.cur[s.col:]...)...)
	if len(s.cur) > maxLineWidth {
		s.cur = s.cur[:maxLineWidth]
	}
}

// tail returns at most n lines ending with the current one.
func (s *screen) tail(n int) []string {
	if n <= 0 {
		return nil
	}
	all := append(append([]string(nil), s.lines...), string(s.cur))
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all
}
