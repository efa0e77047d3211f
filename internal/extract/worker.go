package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"sync"
)

// ErrBusy is returned when an extraction is requested while another is
// still in flight. In-flight extractions are never cancelled or raced.
var ErrBusy = errors.New("extraction already in progress")

// Result is what the worker hands back through the mailbox.
type Result struct {
	Doc     *Document
	Err     error
	Message string
}

// Mailbox is a single-slot, lock-protected hand-off between the extraction
// worker and the render loop. The render loop polls Take once per frame;
// neither side ever blocks.
type Mailbox struct {
	mu  sync.Mutex
	val *Result
}

// Put stores a result, replacing any unclaimed previous one.
func (m *Mailbox) Put(r Result) {
	m.mu.Lock()
	m.val = &r
	m.mu.Unlock()
}

// Take drains the mailbox atomically. The second return is false when the
// mailbox is empty.
func (m *Mailbox) Take() (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.val == nil {
		return Result{}, false
	}
	r := *m.val
	m.val = nil
	return r, true
}

// envelope is the one-line JSON the extractor command prints on stdout,
// pointing at the document JSON it wrote.
type envelope struct {
	Success  bool   `json:"success"`
	JSONPath string `json:"json_path"`
	Items    int    `json:"items"`
	Message  string `json:"message"`
}

// Runner launches the external extractor command off the render thread and
// delivers the decoded document through its Mailbox.
type Runner struct {
	mailbox Mailbox

	mu      sync.Mutex
	running bool

	// command plus leading args; the source path is appended per request.
	command []string
}

// NewRunner creates a runner for the given extractor command line, e.g.
// []string{"python3", "chonker2.py"}.
func NewRunner(command []string) *Runner {
	return &Runner{command: command}
}

// Mailbox exposes the result slot for the frame loop to poll.
func (r *Runner) Mailbox() *Mailbox {
	return &r.mailbox
}

// Running reports whether an extraction is in flight.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Extract starts extraction of the given source file. It returns ErrBusy
// while a previous request is outstanding, guaranteeing at most one result
// ever races into the mailbox.
func (r *Runner) Extract(ctx context.Context, sourcePath string) error {
	if len(r.command) == 0 {
		return errors.New("no extractor command configured")
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrBusy
	}
	r.running = true
	r.mu.Unlock()

	go func() {
		res := r.run(ctx, sourcePath)
		r.mailbox.Put(res)

		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	return nil
}

func (r *Runner) run(ctx context.Context, sourcePath string) Result {
	args := append(append([]string(nil), r.command[1:]...), sourcePath)
	cmd := exec.CommandContext(ctx, r.command[0], args...)

	out, err := cmd.Output()
	if err != nil {
		log.Printf("extractor failed for %s: %v", sourcePath, err)
		return Result{Err: fmt.Errorf("run extractor: %w", err), Message: "Extraction failed"}
	}

	var env envelope
	if err := json.Unmarshal(lastJSONLine(out), &env); err != nil {
		return Result{Err: fmt.Errorf("decode extractor envelope: %w", err), Message: "Extraction failed"}
	}
	if !env.Success {
		return Result{Err: errors.New(env.Message), Message: env.Message}
	}

	document, err := LoadDocument(env.JSONPath)
	if err != nil {
		return Result{Err: err, Message: "Extraction output unreadable"}
	}

	return Result{
		Doc:     document,
		Message: fmt.Sprintf("Extracted %d items", document.ItemCount()),
	}
}

// lastJSONLine picks the final non-empty line of the extractor's stdout,
// skipping any progress chatter it printed before the envelope.
func lastJSONLine(out []byte) []byte {
	end := len(out)
	for end > 0 && (out[end-1] == '\n' || out[end-1] == '\r') {
		end--
	}
	start := end
	for start > 0 && out[start-1] != '\n' {
		start--
	}
	return out[start:end]
}
