package htmlimport

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := lookupAttr(n, key)
	return ok
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// visit walks n depth-first in document order until fn returns false.
func visit(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !visit(c, fn) {
			return false
		}
	}
	return true
}

func findFirst(root *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	visit(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	return found
}

func findAll(root *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	visit(root, func(n *html.Node) bool {
		if n != root && n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
		}
		return true
	})
	return out
}

// enclosing returns the nearest ancestor of n with the given tag, stopping at
// limit.
func enclosing(n *html.Node, a atom.Atom, limit *html.Node) *html.Node {
	for parent := n.Parent; parent != nil && parent != limit; parent = parent.Parent {
		if parent.Type == html.ElementNode && parent.DataAtom == a {
			return parent
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	visit(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
