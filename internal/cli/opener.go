package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// PromptOpener drives the consent step through the terminal: it prints the
// consent URL for the user to open and reads the final redirect URL back
// from stdin. The browser never talks to the CLI directly, so this works
// over SSH too.
type PromptOpener struct {
	In  io.Reader
	Out io.Writer
}

func (opener *PromptOpener) Open(ctx context.Context, consentURL string, redirectURL string) (string, error) {
	fmt.Fprintf(opener.Out, "Open this URL in your browser:\n\n  %s\n\n", consentURL)
	fmt.Fprintf(opener.Out, "After approving, paste the full URL you were redirected to (it starts with %s):\n> ", redirectURL)

	type line struct {
		text string
		err  error
	}
	lines := make(chan line, 1)
	go func() {
		reader := bufio.NewReader(opener.In)
		text, err := reader.ReadString('\n')
		lines <- line{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case read := <-lines:
		if read.err != nil && strings.TrimSpace(read.text) == "" {
			return "", read.err
		}
		return strings.TrimSpace(read.text), nil
	}
}
