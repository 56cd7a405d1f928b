// Package latex compiles resume LaTeX source to PDF and escapes user text.
package latex

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// CompilationTimeout is the maximum time to wait for pdflatex.
const CompilationTimeout = 30 * time.Second

// CompilationError reports a failed or partially failed pdflatex run.
type CompilationError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// Compiler runs pdflatex in throwaway working directories.
type Compiler struct {
	timeout time.Duration
}

// NewCompiler returns a Compiler with the default timeout.
func NewCompiler() *Compiler {
	return &Compiler{timeout: CompilationTimeout}
}

// Available reports whether pdflatex can be found on PATH.
func (c *Compiler) Available() bool {
	_, err := exec.LookPath("pdflatex")
	return err == nil
}

// Compile compiles LaTeX source and returns the PDF bytes and the pdflatex
// log. A PDF produced despite compile errors is returned together with a
// CompilationError so callers can decide whether to keep it.
func (c *Compiler) Compile(ctx context.Context, source string) ([]byte, string, error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return nil, "", &CompilationError{
			Message: "pdflatex not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)",
			Cause:   err,
		}
	}

	workDir, err := os.MkdirTemp("", "latex-compile-*")
	if err != nil {
		return nil, "", &CompilationError{
			Message: "failed to create temporary working directory",
			Cause:   err,
		}
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	texPath := filepath.Join(workDir, "resume.tex")
	if err := os.WriteFile(texPath, []byte(source), 0644); err != nil {
		return nil, "", &CompilationError{
			Message: "failed to write LaTeX source",
			Cause:   err,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// -interaction=nonstopmode prevents interactive prompts on errors.
	cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-output-directory", workDir, texPath)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	logOutput := stdout.String() + stderr.String()

	pdfPath := filepath.Join(workDir, "resume.pdf")
	pdf, readErr := os.ReadFile(pdfPath)
	if readErr != nil {
		return nil, logOutput, &CompilationError{
			Message:   "LaTeX compilation failed: PDF was not generated",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	// pdflatex can emit a PDF and still exit non-zero; hand both back.
	if runErr != nil {
		return pdf, logOutput, &CompilationError{
			Message:   "LaTeX compilation completed with errors (PDF may be incomplete)",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	return pdf, logOutput, nil
}
