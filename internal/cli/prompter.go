package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/clinicops/visitsplit/internal/model"
)

// Prompter collects provider short names interactively, one question per
// provider found in the schedule.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewPrompter creates a prompter over the given reader and writer,
// defaulting to stdin/stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{reader: bufio.NewReader(reader), writer: writer}
}

// ConfigureProviders asks for a display short name for every raw provider
// name, offering the first word of the full name as the default. An empty
// answer accepts the default.
func (p *Prompter) ConfigureProviders(providers []string) (model.ProviderMapping, error) {
	mapping := make(model.ProviderMapping, len(providers))

	if _, err := fmt.Fprintln(p.writer, FormatTitle("Configure provider short names")); err != nil {
		return nil, fmt.Errorf("failed to write prompt title: %w", err)
	}

	for _, full := range providers {
		def := DefaultShortName(full)
		if _, err := fmt.Fprintf(p.writer, "Short name for %q [%s]: ", full, def); err != nil {
			return nil, fmt.Errorf("failed to write prompt: %w", err)
		}
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read answer: %w", err)
		}
		answer := strings.TrimSpace(line)
		if answer == "" {
			answer = def
		}
		mapping[full] = answer
		if err == io.EOF {
			break
		}
	}

	// Providers left unanswered after EOF still get their defaults.
	for _, full := range providers {
		if _, ok := mapping[full]; !ok {
			mapping[full] = DefaultShortName(full)
		}
	}
	return mapping, nil
}

// DefaultShortName is the first word of the full provider name, matching
// how report filenames are usually labeled.
func DefaultShortName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return full
	}
	short := fields[0]
	// "Dr." alone is no short name; fall through to the next word.
	if len(fields) > 1 && strings.EqualFold(strings.TrimRight(short, "."), "dr") {
		short = fields[1]
	}
	return strings.TrimRight(short, ".,")
}
