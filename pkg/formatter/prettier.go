package formatter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Prettier formats through an installed prettier executable, reading the
// source from stdin. Markup uses the "html" parser, script the "babel" one.
type Prettier struct {
	Bin        string // default "prettier"
	PrintWidth int
}

// Format implements Formatter.
func (p *Prettier) Format(ctx context.Context, src string, kind Kind) (string, error) {
	bin := p.Bin
	if bin == "" {
		bin = "prettier"
	}
	width := p.PrintWidth
	if width <= 0 {
		width = DefaultPrintWidth
	}

	parser := "babel"
	if kind == Markup {
		parser = "html"
	}

	cmd := exec.CommandContext(ctx, bin, "--parser", parser, "--print-width", strconv.Itoa(width))
	cmd.Stdin = strings.NewReader(src)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return "", &FormatError{Kind: kind, Err: err}
	}

	return stdout.String(), nil
}
