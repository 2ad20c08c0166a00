package rtfde

import "github.com/rtfde/rtfde/codepage"

// ContentType is the detected body kind, set by whichever `\from…` marker
// the header carries.
type ContentType int

const (
	ContentUnknown ContentType = iota
	ContentHTML
	ContentText
)

func (c ContentType) String() string {
	switch c {
	case ContentHTML:
		return "html"
	case ContentText:
		return "text"
	}
	return "unknown"
}

// headerInfo is what the encapsulation validator extracts from the first
// ten significant tokens of the document.
type headerInfo struct {
	ContentType ContentType
	Codepage    int  // 0 if no \ansicpg present
	HasCodepage bool
	Charset     string // "ansi", "mac", "pc", "pca", or "" if absent
}

const significantTokenWindow = 10

// validateHeader walks root's direct children, grounded on the teacher's
// IsValid/IsHtmlEncapsulated/IsTextEncapsulated but generalized to the
// original Python implementation's stricter ordering: \from… must precede
// \fonttbl, and a duplicate \from… is malformed rather than silently
// overwritten.
func validateHeader(root *Group, cfg *Config) (headerInfo, error) {
	var info headerInfo
	seenFrom := false
	seenFonttbl := false
	significant := 0

	children := root.Children
	if len(children) == 0 {
		return info, malformed(root.Start, "empty document")
	}
	first, ok := children[0].(*Token)
	if !ok || first.Kind != TokControlWord || first.Word != "rtf" || first.Param != "1" {
		return info, malformed(root.Start, "document does not begin with \\rtf1")
	}
	significant++

	for _, child := range children[1:] {
		if significant >= significantTokenWindow {
			break
		}
		switch n := child.(type) {
		case *Group:
			if !seenFrom {
				return info, notEncapsulated("interior group encountered before any \\from marker")
			}
			significant++
		case *Token:
			switch n.Kind {
			case TokIgnoredWhitespace:
				continue
			case TokControlWord:
				switch {
				case n.Word == "fromhtml" && n.IntParam() == 1:
					if seenFrom {
						return info, malformedEncapsulated(n.Start, "duplicate \\from marker")
					}
					seenFrom = true
					info.ContentType = ContentHTML
				case n.Word == "fromtext":
					if seenFrom {
						return info, malformedEncapsulated(n.Start, "duplicate \\from marker")
					}
					seenFrom = true
					info.ContentType = ContentText
				}
				switch n.Word {
				case "fonttbl":
					if seenFonttbl {
						return info, malformedEncapsulated(n.Start, "duplicate \\fonttbl")
					}
					seenFonttbl = true
					if !seenFrom {
						return info, notEncapsulated("\\fonttbl precedes any \\from marker")
					}
				case "ansicpg":
					info.Codepage = n.IntParam()
					info.HasCodepage = true
					if !codepage.IsRegistered(info.Codepage) {
						return info, malformed(n.Start, "unregistered codepage %d", info.Codepage)
					}
				case "ansi", "mac", "pc", "pca":
					info.Charset = n.Word
				}
				significant++
			case TokGroupOpen, TokGroupClose:
				// structural tokens inside the flattened child list never
				// occur here; groups appear as *Group nodes.
			default:
				significant++
			}
		}
		if significant >= significantTokenWindow {
			break
		}
	}

	if !seenFrom {
		return info, notEncapsulated("no \\fromhtml1 or \\fromtext marker within the first %d significant tokens", significantTokenWindow)
	}

	if info.Charset == "" && !info.HasCodepage && !cfg.FallbackToDefaultCharset {
		return info, malformed(root.Start, "missing charset keyword and no \\ansicpg, and fallback_to_default_charset is disabled")
	}

	return info, nil
}
