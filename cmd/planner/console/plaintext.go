package console

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// PlainText 는 백엔드가 HTML 로 꾸며 보낸 일정 본문을 터미널용 텍스트로 바꾼다.
// 마크업이 없는 문자열은 그대로 돌려준다.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return strings.TrimSpace(s)
	}

	var b strings.Builder
	for _, n := range nodes {
		writeNode(&b, n)
	}

	out := blankLines.ReplaceAllString(b.String(), "\n\n")
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func writeNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(b, c)
		}
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style:
		return
	case atom.Br:
		b.WriteString("\n")
		return
	case atom.Li:
		b.WriteString("\n- ")
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.P, atom.Div, atom.Ul, atom.Ol, atom.Table, atom.Tr:
		b.WriteString("\n\n")
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNode(b, c)
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.P, atom.Div, atom.Ul, atom.Ol, atom.Table:
		b.WriteString("\n")
	case atom.Td, atom.Th:
		b.WriteString("\t")
	}
}
