package rtfde

// computeHtmlrtfSuppression walks the tree and returns the set of token
// identities that fall inside an active `\htmlrtf` (suppressed) region,
// grounded on the Python original's get_stripped_HTMLRTF_values and on
// spec.md §4.6's literal algorithm: "depth-first traversal with an
// explicit stack of booleans. On entering a group, push current state...
// on leaving a group, pop state." The stack's top, not a recursion
// parameter, is the single source of truth for the current suppression
// state; toggling `\htmlrtf` mutates the top of stack in place.
//
// Tokens inside a `\*\htmltag` destination are never suppressed even if
// `\htmlrtf` is active around them: that destination's payload is always
// literal HTML, per [MS-OXRTFEX].
func computeHtmlrtfSuppression(root *Group) map[tokenIdentity]bool {
	deleted := map[tokenIdentity]bool{}
	var stack []bool
	top := func() bool {
		if len(stack) == 0 {
			return false
		}
		return stack[len(stack)-1]
	}
	var walk func(n Node, insideHtmlTag bool)
	walk = func(n Node, insideHtmlTag bool) {
		switch v := n.(type) {
		case *Group:
			stack = append(stack, top())
			childInHtmlTag := insideHtmlTag || v.Kind == GroupHtmlTag
			for _, child := range v.Children {
				if tok, ok := child.(*Token); ok && tok.Kind == TokControlWord && tok.Word == "htmlrtf" {
					stack[len(stack)-1] = toggleHtmlrtf(tok)
				}
				walk(child, childInHtmlTag)
			}
			stack = stack[:len(stack)-1]
		case *Token:
			if top() && !insideHtmlTag && !(v.Kind == TokControlWord && v.Word == "htmlrtf") {
				deleted[v.identity()] = true
			}
		}
	}
	walk(root, false)
	return deleted
}

// toggleHtmlrtf reports the suppression state an `\htmlrtf` token sets:
// absent parameter or a nonzero parameter turns suppression on; `\htmlrtf0`
// turns it off.
func toggleHtmlrtf(tok *Token) bool {
	if !tok.HasParam() {
		return true
	}
	return tok.IntParam() != 0
}
