package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Classifier guesses the search language for a place
type Classifier interface {
	Classify(ctx context.Context, kind, city, country string) (Locale, error)
}

// CommandClassifier runs an external program as `<cmd...> <type> <city> <country>`
// and expects one JSON object on stdout with the Locale fields.
type CommandClassifier struct {
	Command []string
	Timeout time.Duration
}

// NewCommandClassifier splits cmdline on whitespace. An empty cmdline returns nil.
func NewCommandClassifier(cmdline string, timeout time.Duration) *CommandClassifier {
	parts := strings.Fields(cmdline)
	if len(parts) == 0 {
		return nil
	}
	return &CommandClassifier{Command: parts, Timeout: timeout}
}

func (c *CommandClassifier) Classify(ctx context.Context, kind, city, country string) (Locale, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, c.Command[1:]...), kind, city, country)
	cmd := exec.CommandContext(ctx, c.Command[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return Locale{}, eris.Wrapf(err, "classifier failed: %s", strings.TrimSpace(stderr.String()))
	}
	return ParseClassifierOutput(stdout.Bytes())
}

// ParseClassifierOutput decodes the classifier's JSON reply. The first JSON
// object in out is used so that chatty wrappers printing banners still work.
func ParseClassifierOutput(out []byte) (Locale, error) {
	start := bytes.IndexByte(out, '{')
	end := bytes.LastIndexByte(out, '}')
	if start < 0 || end < start {
		return Locale{}, eris.New("classifier returned no JSON object")
	}

	var loc Locale
	if err := json.Unmarshal(out[start:end+1], &loc); err != nil {
		return Locale{}, eris.Wrap(err, "decode classifier reply")
	}
	loc.Language = strings.ToLower(strings.TrimSpace(loc.Language))
	loc.BrowserLocale = strings.TrimSpace(loc.BrowserLocale)
	if loc.Language == "" || loc.BrowserLocale == "" {
		return Locale{}, eris.New("classifier reply missing languageCode or locale")
	}
	if strings.TrimSpace(loc.Preposition) == "" {
		if known, ok := LookupLanguage(loc.Language); ok {
			loc.Preposition = known.Preposition
		} else {
			loc.Preposition = EnglishFallback.Preposition
		}
	}
	return loc, nil
}
