package rtfde

import (
	"unicode/utf8"

	"github.com/rtfde/rtfde/codepage"
	"github.com/rtfde/rtfde/logger"
)

// scopeState is the decoding state carried per group scope: the active
// font number and the current \uc fallback byte count. Pushed on group
// entry, popped on exit, per spec.md §4.7's "stack of decoding states".
type scopeState struct {
	font int
	uc   int
}

// textDecoder walks the tree a second time (after HTMLRTF suppression has
// been computed) and turns surviving leaf tokens into decoded byte runs,
// grounded on original_source/RTFDE/text_extraction.py's TextDecoder class:
// font-stack tracking, \uc-aware ANSI-fallback skipping, and surrogate-pair
// buffering, none of which the Go teacher implements at all.
type textDecoder struct {
	cfg         *Config
	fonts       *fontTable
	deleted     map[tokenIdentity]bool
	headerCP    int // \ansicpg codepage, else the header charset keyword's; 0 if neither
	out         map[tokenIdentity][]byte
	fallback    map[tokenIdentity][]byte
	partialSkip map[tokenIdentity]int
	err         error
	log         logger.Sink
}

func newTextDecoder(cfg *Config, fonts *fontTable, deleted map[tokenIdentity]bool, headerCP int) *textDecoder {
	return &textDecoder{
		cfg:         cfg,
		fonts:       fonts,
		deleted:     deleted,
		headerCP:    headerCP,
		out:         map[tokenIdentity][]byte{},
		partialSkip: map[tokenIdentity]int{},
		log:         cfg.sink(),
	}
}

// defaultCodepage resolves the codec to use when no font is active.
func (d *textDecoder) defaultCodepage() int {
	if d.headerCP != 0 {
		return d.headerCP
	}
	return codepage.Default
}

func (d *textDecoder) codepageFor(state scopeState) int {
	if fd := d.fonts.lookup(state.font); fd != nil && fd.HasCodepage {
		return fd.Codepage
	}
	return d.defaultCodepage()
}

// decodeGroup decodes a single group's children left to right, per the
// ordered rule list in spec.md §4.7. It recurses into child groups with the
// inherited (font, uc) state pushed on the stack.
func (d *textDecoder) decodeGroup(g *Group, inherited scopeState) {
	state := inherited
	var highSurrogate *uint32
	children := g.Children
	i := 0
	for i < len(children) {
		child := children[i]
		if tok, ok := child.(*Token); ok && d.deleted[tok.identity()] {
			i++
			continue
		}
		switch v := child.(type) {
		case *Group:
			d.decodeGroup(v, state)
			i++
		case *Token:
			if v.Kind == TokIgnoredWhitespace {
				i++
				continue
			}
			switch v.Kind {
			case TokControlWord:
				switch v.Word {
				case "f":
					state.font = v.IntParam()
					i++
				case "uc":
					n := v.IntParam()
					if n < 0 {
						n = 0
					}
					state.uc = n
					i++
				default:
					if emitted, ok := controlWordText(v.Word); ok {
						d.emit(v, []byte(emitted))
					}
					i++
				}
			case TokUnicodeEscape:
				consumed := d.decodeUnicodeEscape(v, children, i+1, state, &highSurrogate)
				i += 1 + consumed
			case TokHexEscape:
				j := i
				var run []byte
				for j < len(children) {
					ht, ok := children[j].(*Token)
					if !ok || ht.Kind != TokHexEscape || d.deleted[ht.identity()] {
						break
					}
					run = append(run, ht.Hex)
					j++
				}
				decoded, err := codepage.Decode(run, d.codepageFor(state))
				if err != nil {
					d.log.Error("hex escape run decode failed", "err", err)
					decoded = run
				}
				d.emit(v, decoded)
				i = j
			case TokLiteralString:
				text := v.Text
				if skip, ok := d.partialSkip[v.identity()]; ok {
					text = text[skip:]
				}
				decoded, err := codepage.Decode(text, d.codepageFor(state))
				if err != nil {
					d.log.Error("literal string decode failed", "err", err)
					decoded = text
				}
				d.emit(v, decoded)
				i++
			case TokControlSymbol:
				if emitted, ok := controlSymbolText(v.Symbol); ok {
					d.emit(v, emitted)
				}
				i++
			default:
				i++
			}
		default:
			i++
		}
	}
	if highSurrogate != nil {
		d.recordSurrogateError(g.Start, "unresolved high surrogate at group close")
	}
}

// decodeUnicodeEscape handles one \uN token: normalizes the wire value,
// consumes up to `state.uc` bytes worth of ANSI-fallback tokens after it
// (stopping early at a group or at a token that is not text, see
// skipFallback), and either buffers a high surrogate, merges a pending one, or emits the
// code point directly. Returns how many trailing sibling tokens were
// consumed as fallback.
func (d *textDecoder) decodeUnicodeEscape(tok *Token, siblings []Node, from int, state scopeState, pending **uint32) int {
	raw, _ := parseSignedInt(tok.Param)
	var scalar uint32
	if raw < 0 {
		scalar = uint32(raw + 65536)
	} else {
		scalar = uint32(raw % 65536)
	}

	consumed := d.skipFallback(siblings, from, state.uc)

	switch {
	case scalar >= 0xD800 && scalar <= 0xDBFF:
		if *pending != nil {
			d.recordSurrogateError(tok.Start, "high surrogate follows unresolved high surrogate")
		}
		v := scalar
		*pending = &v
		return consumed
	case scalar >= 0xDC00 && scalar <= 0xDFFF:
		if *pending == nil {
			d.failUnicode(tok, "low surrogate with no preceding high surrogate")
			return consumed
		}
		high := **pending
		*pending = nil
		merged := ((high - 0xD800) * 0x400) + (scalar - 0xDC00) + 0x10000
		d.emitRune(tok, merged)
		return consumed
	default:
		if *pending != nil {
			d.recordSurrogateError(tok.Start, "high surrogate not followed by low surrogate")
			*pending = nil
		}
		d.emitRune(tok, scalar)
		return consumed
	}
}

// recordSurrogateError logs a surrogate-pairing failure that has no single
// token to attach an ASCII-fallback substitution to (a stale, discarded
// pending high surrogate), and records it on d.err under the same policy
// as failUnicode.
func (d *textDecoder) recordSurrogateError(offset int, why string) {
	d.log.Error("surrogate pair decode failure", "offset", offset, "reason", why)
	if !d.cfg.UseASCIIAlternativesOnUnicodeDecodeFailure && d.err == nil {
		d.err = malformed(offset, "%s", why)
	}
}

func (d *textDecoder) emitRune(tok *Token, scalar uint32) {
	if scalar > utf8.MaxRune {
		d.failUnicode(tok, "scalar value out of range")
		return
	}
	buf := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(buf, rune(scalar))
	d.emit(tok, buf[:n])
}

// failUnicode records a decode failure, emitting the ASCII fallback if the
// caller enabled that option; otherwise it records a hard MalformedRtfError
// (the first one encountered) on d.err, which Deencapsulate surfaces to the
// caller once decoding finishes, per spec.md §7's "unless
// use_ascii_alternatives_on_unicode_decode_failure, propagate as a decode
// failure embedded in MalformedRtf".
func (d *textDecoder) failUnicode(tok *Token, why string) {
	d.log.Error("unicode escape decode failure", "offset", tok.Start, "reason", why)
	if d.cfg.UseASCIIAlternativesOnUnicodeDecodeFailure {
		if fb, ok := d.fallback[tok.identity()]; ok {
			d.emit(tok, fb)
		}
		return
	}
	if d.err == nil {
		d.err = malformed(tok.Start, "unicode escape decode failure: %s", why)
	}
}

// skipFallback marks up to uc bytes worth of trailing sibling tokens as
// consumed ANSI fallback, recording their bytes so failUnicode can recover
// them. Returns how many sibling slots were fully swallowed by the
// fallback run; the caller advances past exactly that many. A
// TokLiteralString that only partially falls inside the uc-byte window is
// NOT counted as swallowed: only its leading `take` bytes are captured as
// fallback, and its identity is recorded in d.partialSkip so the normal
// TokLiteralString decode path (decodeGroup) later decodes and emits only
// the remaining bytes, per spec.md §4.7 rule 3's "exactly uc bytes are
// consumed" — the leftover real text must still reach the output.
func (d *textDecoder) skipFallback(siblings []Node, from int, uc int) int {
	if d.fallback == nil {
		d.fallback = map[tokenIdentity][]byte{}
	}
	remaining := uc
	consumed := 0
	var captured []byte
	for j := from; remaining > 0 && j < len(siblings); j++ {
		tok, ok := siblings[j].(*Token)
		if !ok {
			break
		}
		switch tok.Kind {
		case TokHexEscape:
			captured = append(captured, tok.Hex)
			remaining--
			consumed++
		case TokControlSymbol:
			captured = append(captured, tok.Symbol)
			remaining--
			consumed++
		case TokLiteralString:
			take := len(tok.Text)
			if take > remaining {
				take = remaining
			}
			captured = append(captured, tok.Text[:take]...)
			remaining -= take
			if take == len(tok.Text) {
				consumed++
			} else {
				d.partialSkip[tok.identity()] = take
			}
		default:
			remaining = 0
		}
	}
	if from-1 >= 0 {
		if t, ok := siblings[from-1].(*Token); ok {
			d.fallback[t.identity()] = captured
		}
	}
	return consumed
}

func (d *textDecoder) emit(n Node, b []byte) {
	tok, ok := n.(*Token)
	if !ok {
		return
	}
	d.out[tok.identity()] = b
}

// controlWordText returns the literal Unicode text a "known-char" control
// word decodes to (rule 7), or ok=false for anything that should be
// discarded (rule 8).
func controlWordText(word string) (string, bool) {
	switch word {
	case "par", "line":
		return "\n", true
	case "tab":
		return "\t", true
	case "lquote":
		return "‘", true
	case "rquote":
		return "’", true
	case "ldblquote":
		return "“", true
	case "rdblquote":
		return "”", true
	case "bullet":
		return "•", true
	case "endash":
		return "–", true
	case "emdash":
		return "—", true
	}
	return "", false
}

// controlSymbolText returns the literal bytes a control symbol with text
// meaning decodes to (rule 6). `\_` is deliberately mapped to U+2011 (the
// NON-BREAKING HYPHEN codepoint) rather than the Python original's U+00AD,
// matching this library's stated semantics for the two hyphen escapes.
func controlSymbolText(sym byte) ([]byte, bool) {
	switch sym {
	case '~':
		return []byte(" "), true
	case '-':
		return []byte("­"), true
	case '_':
		return []byte("‑"), true
	case '|':
		return nil, true
	}
	return nil, false
}
