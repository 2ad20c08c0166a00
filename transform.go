package rtfde

import "github.com/rtfde/rtfde/logger"

// finalize does the work of the three tree-transform passes described in
// spec.md §4.8 in a single traversal of an already-decoded tree, producing
// the final output bytes. Grounded on original_source/RTFDE/transformers.py's
// StripNonVisibleRTFGroups/StripControlWords/RTFCleaner, generalized with
// the teacher's richer destination-predicate family (captured up front in
// Group.classify rather than re-derived here).
//
// keepFontdef implements the `keep_fontdef` configuration option (spec.md
// §6): when set, the `\fonttbl` group (and everything nested inside it,
// such as each per-font definition group) is retained in the output
// instead of being stripped, for diagnostics.
//
// A GroupDestination that is not one of the recognized kinds (an
// unrecognized `\*\...` destination, e.g. a formula or object payload this
// package has no decoder for) is stripped the same as any other
// non-visible group, per spec.md §7's "unsupported features → silently
// produce empty output for the affected region (never fatal); log at
// debug" — log stays observed without ever failing the call.
func finalize(root *Group, decoded map[tokenIdentity][]byte, keepFontdef bool, log logger.Sink) []byte {
	var out []byte
	var walk func(n Node, isRoot bool, forceInclude bool)
	walk = func(n Node, isRoot bool, forceInclude bool) {
		switch v := n.(type) {
		case *Group:
			isFontdef := keepFontdef && v.Kind == GroupFontTable
			include := isRoot || forceInclude || v.Kind == GroupHtmlTag || isFontdef
			if !include {
				if v.Kind == GroupDestination {
					log.Debug("stripping unsupported destination", "offset", v.Start, "control_word", v.controlWordAt(1))
				}
				// non-visible group stripper: discard everything except the
				// document root, \*\htmltag destinations, and (when
				// keepFontdef is set) the retained \fonttbl subtree.
				return
			}
			childForce := forceInclude || isFontdef
			for _, child := range v.Children {
				walk(child, false, childForce)
			}
		case *Token:
			out = append(out, decoded[v.identity()]...)
		}
	}
	walk(root, true, false)
	return out
}
