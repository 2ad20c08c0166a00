// Package rtfde de-encapsulates the HTML or plain-text content that
// Outlook wraps inside an RTF container when exporting a .msg message
// whose original body was HTML or text, per [MS-OXRTFEX].
package rtfde

import "github.com/rtfde/rtfde/codepage"

// Deencapsulator is the public facade: constructed from raw RTF bytes, it
// runs the full pipeline once and exposes the reconstructed content.
// Grounded on the teacher's rtfConverter/NewConverter/Convert, fixing the
// teacher's own latent bug where the plain-text path referenced an
// interpreter type (`rtfTextInterpreter`) that was never defined — here
// both content types share one pipeline, so the bug has no analogue.
type Deencapsulator struct {
	cfg         *Config
	raw         []byte
	content     []byte
	contentType ContentType
	ran         bool
}

// NewDeencapsulator constructs a Deencapsulator over raw RTF bytes. A nil
// cfg uses NewDefaultConfig().
func NewDeencapsulator(raw []byte, cfg *Config) *Deencapsulator {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	return &Deencapsulator{cfg: cfg, raw: raw}
}

// NewDeencapsulatorFromString constructs a Deencapsulator from a string,
// encoding it as Latin-1 so every code point maps to exactly one byte and
// byte identity with the original wire form is preserved.
func NewDeencapsulatorFromString(s string, cfg *Config) *Deencapsulator {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			r = '?'
		}
		b = append(b, byte(r))
	}
	return NewDeencapsulator(b, cfg)
}

// Deencapsulate runs the full pipeline: strip binary payloads, normalize
// escaped structural characters, tokenize, build the tree, validate the
// header, parse the font table, compute HTMLRTF suppression, decode text,
// and run the tree transformers. It is safe to call more than once; later
// calls are no-ops returning the first result.
func (d *Deencapsulator) Deencapsulate() error {
	if d.ran {
		return nil
	}
	if err := d.cfg.Validate(); err != nil {
		return err
	}

	stripped, _ := stripBinaryPayloads(d.raw)
	normalized := normalizeEscapedControlChars(stripped)

	toks, err := lex(normalized)
	if err != nil {
		return err
	}
	root, err := buildTree(toks)
	if err != nil {
		return err
	}

	info, err := validateHeader(root, d.cfg)
	if err != nil {
		return err
	}

	fonts := parseFontTable(root)
	deleted := computeHtmlrtfSuppression(root)

	headerCP := 0
	if info.HasCodepage {
		headerCP = info.Codepage
	} else if cp, ok := codepage.FromHeaderKeyword(info.Charset); ok {
		headerCP = cp
	}
	dec := newTextDecoder(d.cfg, fonts, deleted, headerCP)
	dec.decodeGroup(root, scopeState{font: fonts.DefaultNum, uc: d.cfg.InitialByteCount})
	if dec.err != nil {
		return dec.err
	}

	d.content = finalize(root, dec.out, d.cfg.KeepFontdef, d.cfg.sink())
	d.contentType = info.ContentType
	d.ran = true
	return nil
}

// Content returns the de-encapsulated bytes. Deencapsulate must have
// succeeded first.
func (d *Deencapsulator) Content() []byte { return d.content }

// ContentType reports whether the de-encapsulated content is HTML or text.
func (d *Deencapsulator) ContentType() ContentType { return d.contentType }

// HTML returns the content if ContentType is html, and nil otherwise.
func (d *Deencapsulator) HTML() []byte {
	if d.contentType != ContentHTML {
		return nil
	}
	return d.content
}

// Text returns the content if ContentType is text, and nil otherwise.
func (d *Deencapsulator) Text() []byte {
	if d.contentType != ContentText {
		return nil
	}
	return d.content
}

// Deencapsulate is a one-shot convenience wrapper: construct, run, and
// return the content and its type in a single call.
func Deencapsulate(raw []byte, cfg *Config) ([]byte, ContentType, error) {
	d := NewDeencapsulator(raw, cfg)
	if err := d.Deencapsulate(); err != nil {
		return nil, ContentUnknown, err
	}
	return d.Content(), d.ContentType(), nil
}
