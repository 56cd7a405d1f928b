package latex

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDoc = `\documentclass{article}
\begin{document}
Hello, resume.
\end{document}
`

func TestCompile(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		t.Skip("pdflatex not installed, skipping compilation test")
	}

	c := NewCompiler()
	pdf, logOutput, err := c.Compile(context.Background(), minimalDoc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"), "output should be a PDF")
	assert.NotEmpty(t, logOutput)
}

func TestCompile_InvalidSource(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		t.Skip("pdflatex not installed, skipping compilation test")
	}

	c := NewCompiler()
	_, logOutput, err := c.Compile(context.Background(), `\documentclass{nonexistent-class-xyz}`)
	require.Error(t, err)

	var ce *CompilationError
	require.ErrorAs(t, err, &ce)
	assert.NotEmpty(t, logOutput)
}
