package demo

import (
	"fmt"
	"io"
	"sync"
)

// transcript collects the lines printed by demo targets
type transcript struct {
	lines []string
	w     io.Writer
}

func (t *transcript) printf(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	t.lines = append(t.lines, line)
	if t.w != nil {
		_, _ = fmt.Fprintf(t.w, " - %s\n", line)
	}
}

// since returns the lines printed after mark
func (t *transcript) since(mark int) []string {
	return append([]string(nil), t.lines[mark:]...)
}

// Free functions have no receiver to carry the transcript, so they print to
// the one of the running demo. runMu keeps runs from sharing it.
var (
	runMu   sync.Mutex
	current *transcript
)

func announce(event string) {
	current.printf("function [%s]", event)
}

func ping() {
	current.printf("signal function")
}

// widget is the demo receiver for bound methods and functors
type widget struct {
	name string
	log  *transcript
}

func (w *widget) Method(event string) {
	w.log.printf("'%s' method [%s]", w.name, event)
}

func (w *widget) Other(event string) {
	w.log.printf("'%s' other method [%s]", w.name, event)
}

// Call makes *widget a delegate.Callable
func (w *widget) Call(event string) {
	w.log.printf("'%s' functor [%s]", w.name, event)
}
