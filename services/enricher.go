package services

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"

	"maps-lead-scraper/utils"
)

// Enricher starts the downstream worker on a finished artifact
type Enricher struct {
	command []string
	logger  *utils.Logger
}

// NewEnricher splits cmdline on whitespace. An empty cmdline disables the handoff.
func NewEnricher(cmdline string, logger *utils.Logger) *Enricher {
	return &Enricher{command: strings.Fields(cmdline), logger: logger}
}

// Enabled reports whether a downstream command is configured
func (e *Enricher) Enabled() bool {
	return len(e.command) > 0
}

// Signal runs `<cmd...> <artifact> <lang> <country>` and waits for it. The
// returned error reflects the worker's exit status only; the artifact is
// complete either way.
func (e *Enricher) Signal(ctx context.Context, artifact, lang, country string) error {
	if !e.Enabled() {
		e.logger.Info("No enrichment command configured, leaving %s for manual processing", artifact)
		return nil
	}

	args := append(append([]string{}, e.command[1:]...), artifact, lang, country)
	cmd := exec.CommandContext(ctx, e.command[0], args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	e.logger.Info("Starting enrichment: %s", strings.Join(append(e.command[:1:1], args...), " "))
	if err := cmd.Run(); err != nil {
		return eris.Wrapf(err, "enrichment command %q", e.command[0])
	}
	return nil
}
