package rtfde

import "github.com/rtfde/rtfde/codepage"

// fontdef is one entry of the font table: a font number mapped to the
// codepage (and therefore decoder) its text runs should use.
type fontdef struct {
	Number      int
	Codepage    int
	HasCodepage bool
	Family      string
}

// fontTable maps \fN to its resolved fontdef, plus the document default
// font number from \deffN.
type fontTable struct {
	Fonts      map[int]*fontdef
	DefaultNum int
	HasDefault bool
}

func (ft *fontTable) lookup(n int) *fontdef {
	if ft == nil {
		return nil
	}
	return ft.Fonts[n]
}

// parseFontTable locates the first \fonttbl group in the tree (depth-first,
// at any nesting level) and parses each child font-definition group, grounded on the teacher's
// parseFontTableGroup/parseFontInfoGroup merged with the fuller
// fcharset-to-codepage table carried in the codepage package, plus
// \cpgN override support the teacher never read.
func parseFontTable(root *Group) *fontTable {
	ft := &fontTable{Fonts: map[int]*fontdef{}}
	for _, child := range root.Children {
		tok, ok := child.(*Token)
		if ok && tok.Kind == TokControlWord && len(tok.Word) >= 4 && tok.Word[:4] == "deff" {
			ft.DefaultNum = tok.IntParam()
			ft.HasDefault = true
		}
	}
	group := findGroupByFirstWord(root, "fonttbl")
	if group == nil {
		return ft
	}
	for _, child := range group.Children {
		g, ok := child.(*Group)
		if !ok {
			continue
		}
		fd := parseFontInfoGroup(g)
		if fd != nil {
			ft.Fonts[fd.Number] = fd
		}
	}
	return ft
}

func findGroupByFirstWord(root *Group, word string) *Group {
	var found *Group
	Walk(root, func(g *Group) bool {
		if found != nil {
			return false
		}
		if g.FirstControlWord() == word {
			found = g
			return false
		}
		return true
	}, nil)
	return found
}

// parseFontInfoGroup extracts one font definition's number, fcharset,
// explicit codepage override, and family name.
func parseFontInfoGroup(g *Group) *fontdef {
	fd := &fontdef{Number: -1}
	var fcharset int
	haveFcharset := false
	var nameBytes []byte
	for _, child := range g.Children {
		tok, ok := child.(*Token)
		if !ok {
			continue
		}
		switch tok.Kind {
		case TokControlWord:
			switch tok.Word {
			case "f":
				fd.Number = tok.IntParam()
			case "fcharset":
				fcharset = tok.IntParam()
				haveFcharset = true
			case "cpg":
				fd.Codepage = tok.IntParam()
				fd.HasCodepage = true
			}
		case TokLiteralString:
			nameBytes = append(nameBytes, tok.Text...)
		}
	}
	if fd.Number < 0 {
		return nil
	}
	if !fd.HasCodepage && haveFcharset {
		if cp, ok := codepage.FromFcharset(fcharset); ok {
			fd.Codepage = cp
			fd.HasCodepage = true
		}
	}
	fd.Family = trimFontName(nameBytes)
	return fd
}

func trimFontName(b []byte) string {
	start, end := 0, len(b)
	for start < end && (b[start] == ' ' || b[start] == '\t') {
		start++
	}
	for end > start && (b[end-1] == ' ' || b[end-1] == ';' || b[end-1] == '\t') {
		end--
	}
	return string(b[start:end])
}
