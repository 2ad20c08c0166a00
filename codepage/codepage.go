// Package codepage resolves RTF codepage numbers and header charset
// keywords to golang.org/x/text decoders. It is the Go-native registry
// behind the font-table parser and text decoder.
package codepage

import (
	"errors"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// ErrUnknown is returned when a codepage or charset keyword has no
// registered mapping.
var ErrUnknown = errors.New("codepage: no registered codec")

// FromHeaderKeyword maps a header charset keyword (`\ansi`, `\mac`, `\pc`,
// `\pca`) to its codepage number.
func FromHeaderKeyword(keyword string) (int, bool) {
	cp, ok := headerKeywordCodepage[keyword]
	return cp, ok
}

var headerKeywordCodepage = map[string]int{
	"ansi": 1252,
	"mac":  10000,
	"pc":   437,
	"pca":  850,
}

// FromFcharset maps an RTF `\fcharsetN` value to the codepage it implies,
// per the table in [MS-OXRTFEX]. Charsets with no corresponding codepage
// (SYMBOL, DEFAULT, OEM) return ok=false.
func FromFcharset(n int) (int, bool) {
	cp, ok := fcharsetCodepage[n]
	if !ok || cp == 0 {
		return 0, false
	}
	return cp, true
}

var fcharsetCodepage = map[int]int{
	0:   1252, // ANSI
	1:   0,    // DEFAULT
	2:   0,    // SYMBOL
	77:  10000, // MAC
	128: 932,  // SHIFTJIS
	129: 949,  // HANGUL
	130: 1361, // JOHAB
	134: 936,  // GB2312
	136: 950,  // CHINESEBIG5
	161: 1253, // GREEK
	162: 1254, // TURKISH
	163: 1258, // VIETNAMESE
	177: 1255, // HEBREW
	178: 1256, // ARABIC
	179: 1256, // ARABIC_TRADITIONAL
	180: 1256, // ARABIC_USER
	181: 1255, // HEBREW_USER
	186: 1257, // BALTIC
	204: 1251, // RUSSIAN
	222: 874,  // THAI
	238: 1250, // EE
	254: 437,  // PC437
	255: 0,    // OEM
}

// IsRegistered reports whether a codepage number is one this package (or a
// conforming sibling implementation) recognizes as a valid codepage
// identifier, independent of whether a decoder is wired up for it.
func IsRegistered(codepageNum int) bool {
	_, ok := registeredCodepages[codepageNum]
	return ok
}

var registeredCodepages = map[int]bool{
	437: true, 708: true, 819: true, 850: true, 852: true, 860: true,
	862: true, 863: true, 864: true, 865: true, 866: true, 874: true,
	932: true, 936: true, 949: true, 950: true, 1250: true, 1251: true,
	1252: true, 1253: true, 1254: true, 1255: true, 1256: true, 1257: true,
	1258: true, 1361: true, 10000: true, 65000: true, 65001: true,
}

// CodecName returns the canonical decoder name for a codepage number, the
// way the font table's fontdef reports it for diagnostics.
func CodecName(codepageNum int) (string, bool) {
	name, ok := codepageCodecName[codepageNum]
	return name, ok
}

var codepageCodecName = map[int]string{
	437:   "cp437",
	708:   "asmo-708",
	819:   "cp819",
	850:   "cp850",
	852:   "cp852",
	860:   "cp860",
	862:   "cp862",
	863:   "cp863",
	865:   "cp865",
	866:   "cp866",
	874:   "cp874",
	932:   "cp932",
	936:   "cp936",
	949:   "cp949",
	950:   "cp950",
	1250:  "cp1250",
	1251:  "cp1251",
	1252:  "cp1252",
	1253:  "cp1253",
	1254:  "cp1254",
	1255:  "cp1255",
	1256:  "cp1256",
	1257:  "cp1257",
	1258:  "cp1258",
	1361:  "cp1361",
	10000: "mac",
	65000: "utf-7",
	65001: "utf-8",
}

// Decoder returns the golang.org/x/text decoder for a codepage number.
// UTF-8 (65001) and unknown codepages return ok=false: callers treat the
// bytes as already-UTF-8 or fall through to Default.
func Decoder(codepageNum int) (*encoding.Decoder, bool) {
	switch codepageNum {
	case 10000:
		return charmap.Macintosh.NewDecoder(), true
	case 437:
		return charmap.CodePage437.NewDecoder(), true
	case 708:
		return charmap.ISO8859_6.NewDecoder(), true
	case 819:
		return charmap.ISO8859_1.NewDecoder(), true
	case 850:
		return charmap.CodePage850.NewDecoder(), true
	case 852:
		return charmap.CodePage852.NewDecoder(), true
	case 860:
		return charmap.CodePage860.NewDecoder(), true
	case 862:
		return charmap.CodePage862.NewDecoder(), true
	case 863:
		return charmap.CodePage863.NewDecoder(), true
	case 865:
		return charmap.CodePage865.NewDecoder(), true
	case 866:
		return charmap.CodePage866.NewDecoder(), true
	case 874:
		return charmap.Windows874.NewDecoder(), true
	case 932:
		return japanese.ShiftJIS.NewDecoder(), true
	case 936:
		return simplifiedchinese.GBK.NewDecoder(), true
	case 949:
		return korean.EUCKR.NewDecoder(), true
	case 950:
		return traditionalchinese.Big5.NewDecoder(), true
	case 1250:
		return charmap.Windows1250.NewDecoder(), true
	case 1251:
		return charmap.Windows1251.NewDecoder(), true
	case 1252:
		return charmap.Windows1252.NewDecoder(), true
	case 1253:
		return charmap.Windows1253.NewDecoder(), true
	case 1254:
		return charmap.Windows1254.NewDecoder(), true
	case 1255:
		return charmap.Windows1255.NewDecoder(), true
	case 1256:
		return charmap.Windows1256.NewDecoder(), true
	case 1257:
		return charmap.Windows1257.NewDecoder(), true
	case 1258:
		return charmap.Windows1258.NewDecoder(), true
	case 1361:
		return korean.EUCKR.NewDecoder(), true
	}
	return nil, false
}

// Default is the codec used when no font, no `\cpg` and no header keyword
// narrows the choice: Windows-1252, per [MS-OXRTFEX]'s recommendation that a
// de-encapsulating reader assume the US/Western-Europe default.
const Default = 1252

// Decode converts b from the given codepage to UTF-8. Codepage 65001 (and
// any unregistered codepage) is passed through unchanged on the assumption
// it is already UTF-8 or single-byte ASCII-compatible.
func Decode(b []byte, codepageNum int) ([]byte, error) {
	dec, ok := Decoder(codepageNum)
	if !ok {
		return b, nil
	}
	return dec.Bytes(b)
}
