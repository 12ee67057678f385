package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docsbuild/internal/logfields"
)

// CommandBuilder runs an external converter once per document. Command is an
// argv template where "{input}" and "{output}" are replaced with the document
// and destination paths.
type CommandBuilder struct {
	Command   []string
	Extension string
	documents []Document
}

func NewCommandBuilder(command []string, extension string) *CommandBuilder {
	if extension == "" {
		extension = ".html"
	}
	return &CommandBuilder{Command: append([]string(nil), command...), Extension: extension}
}

func (c *CommandBuilder) Recreate() Builder {
	return NewCommandBuilder(c.Command, c.Extension)
}

func (c *CommandBuilder) Build(ctx context.Context, inputDir, outputDir string, opts Options) ([]Rendered, error) {
	if len(c.Command) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrRendererNotFound)
	}
	if _, err := exec.LookPath(c.Command[0]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRendererNotFound, err)
	}

	rels, err := listInputs(inputDir, opts.Recursive)
	if err != nil {
		return nil, fmt.Errorf("list inputs: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}

	rendered := make([]Rendered, 0, len(rels))
	for _, rel := range rels {
		src := filepath.Join(inputDir, filepath.FromSlash(rel))
		if !isSource(rel) {
			if err := copyFile(src, filepath.Join(outputDir, filepath.FromSlash(rel))); err != nil {
				return rendered, err
			}
			continue
		}

		outRel := outputRel(rel, c.Extension)
		dst := filepath.Join(outputDir, filepath.FromSlash(outRel))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return rendered, err
		}
		if err := c.run(ctx, src, dst, opts.Verbose); err != nil {
			return rendered, fmt.Errorf("%s: %w", rel, err)
		}

		c.documents = append(c.documents, Document{Source: rel, Output: outRel})
		rendered = append(rendered, Rendered{Output: dst, Source: rel})
	}

	if err := writeMeta(outputDir, c.documents); err != nil {
		return rendered, err
	}
	return rendered, nil
}

func (c *CommandBuilder) run(ctx context.Context, input, output string, verbose bool) error {
	argv := make([]string, len(c.Command))
	placeholders := strings.NewReplacer("{input}", input, "{output}", output)
	for i, arg := range c.Command {
		argv[i] = placeholders.Replace(arg)
	}

	// #nosec G204 -- argv comes from operator configuration
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if verbose {
		slog.Debug("Running renderer", logfields.Renderer(argv[0]), logfields.File(input))
	}
	err := cmd.Run()
	if errStr := stderr.String(); errStr != "" {
		slog.Warn("renderer stderr", logfields.Renderer(argv[0]), logfields.File(input), slog.String("error_output", errStr))
	}
	if err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(stdout.String())
		}
		if output != "" {
			return fmt.Errorf("%w: %w: %s", ErrRenderFailed, err, output)
		}
		return fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	return nil
}
