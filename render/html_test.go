package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// element is a start tag seen while walking rendered markup.
type element struct {
	tag   string
	attrs map[string]string
	text  string
}

// elements tokenizes markup and returns every start or self-closing tag,
// with the text that immediately follows it.
func elements(t *testing.T, markup string) []element {
	t.Helper()
	var out []element
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return out
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			el := element{tag: tok.Data, attrs: map[string]string{}}
			for _, a := range tok.Attr {
				el.attrs[a.Key] = a.Val
			}
			out = append(out, el)
		case html.TextToken:
			if n := len(out); n > 0 && out[n-1].text == "" {
				out[n-1].text = strings.TrimSpace(string(z.Text()))
			}
		}
	}
}

func withAttr(els []element, key, val string) []element {
	var out []element
	for _, el := range els {
		if v, ok := el.attrs[key]; ok && (val == "" || v == val) {
			out = append(out, el)
		}
	}
	return out
}

func renderFragment(t *testing.T, name string, data interface{}) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, data, nil))
	return buf.String()
}
