package webext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContent(t *testing.T) {
	content, err := Content()
	require.NoError(t, err)
	require.NotEmpty(t, content)

	// The bundled script is minified: no comment lines survive.
	for _, line := range strings.Split(content, "\n") {
		assert.False(t, strings.HasPrefix(strings.TrimSpace(line), "//"), line)
	}

	assert.Contains(t, content, "adjustments")
}

func TestMinify_StripsComments(t *testing.T) {
	src := `// leading comment
var a = 1; // trailing comment
/* block
   comment */
var b = 2;
var c = a /* inline */ + b;
`

	out := minify(src)

	assert.Equal(t, "var a = 1;\nvar b = 2;\nvar c = a  + b;", out)
}

func TestMinify_KeepsSlashesInStrings(t *testing.T) {
	src := `var url = "https://example.com/path"; // real comment`

	out := minify(src)

	assert.Equal(t, `var url = "https://example.com/path";`, out)
}

func TestMinify_DropsBlankLinesAndIndent(t *testing.T) {
	src := "function f() {\n    return 1;\n\n}\n"

	out := minify(src)

	assert.Equal(t, "function f() {\nreturn 1;\n}", out)
}

func TestInsideString(t *testing.T) {
	assert.True(t, insideString(`"ab//cd"`, 3))
	assert.False(t, insideString(`"ab" // x`, 5))
	assert.True(t, insideString(`'it\'s // here'`, 8))
	assert.False(t, insideString(`var x = 1 // c`, 10))
}
