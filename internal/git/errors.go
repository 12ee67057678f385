package git

import (
	"strings"

	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
)

// classifyGitError translates go-git errors into ClassifiedErrors.
func classifyGitError(err error, op, url string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsClassified(err); ok {
		return err
	}

	builder := errors.GitError("git " + op + " failed").
		WithCause(err).
		WithContext("op", op).
		WithContext("url", url)

	l := strings.ToLower(err.Error())
	switch {
	case strings.Contains(l, "authentication") || strings.Contains(l, "authorization"):
		builder.UserAction()
	case strings.Contains(l, "repository not found") || strings.Contains(l, "reference not found") || strings.Contains(l, "couldn't find remote ref"):
		builder.UserAction()
	case strings.Contains(l, "remote hung up") || strings.Contains(l, "connection reset") || strings.Contains(l, "timeout") || strings.Contains(l, "no route to host"):
		builder.Retryable()
	}
	return builder.Build()
}
