package triage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Prompter asks the user a single question and returns the answer.
type Prompter interface {
	Prompt(ctx context.Context, message string) (string, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(ctx context.Context, message string) (string, error)

// Prompt implements Prompter.
func (f PrompterFunc) Prompt(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}

type lineResult struct {
	line string
	err  error
}

// LinePrompter reads answers line by line from a reader, typically stdin.
// Reads happen on a background goroutine so a cancelled context returns
// immediately; a line typed after cancellation answers the next prompt.
// End of input is an empty answer.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer

	once  sync.Once
	lines chan lineResult

	mu  sync.Mutex
	err error
}

// NewLinePrompter creates a LinePrompter reading from in and writing prompts to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan lineResult),
	}
}

func (p *LinePrompter) readLoop() {
	for {
		line, err := p.in.ReadString('\n')
		if line != "" {
			p.lines <- lineResult{line: line}
		}
		if err != nil {
			p.lines <- lineResult{err: err}
			return
		}
	}
}

// Prompt implements Prompter.
func (p *LinePrompter) Prompt(ctx context.Context, message string) (string, error) {
	p.mu.Lock()
	done := p.err
	p.mu.Unlock()
	if done != nil {
		return p.finished(done)
	}

	if message != "" {
		fmt.Fprint(p.out, message)
	}
	p.once.Do(func() { go p.readLoop() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-p.lines:
		if res.err != nil {
			p.mu.Lock()
			p.err = res.err
			p.mu.Unlock()
			return p.finished(res.err)
		}
		return strings.TrimSpace(res.line), nil
	}
}

func (p *LinePrompter) finished(err error) (string, error) {
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	return "", fmt.Errorf("read answer: %w", err)
}
