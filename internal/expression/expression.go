// Package expression detects facial-expression markers like *smiles* in
// model output so the CLI can display the agent's face.
package expression

import (
	"strings"
	"sync"
)

var markers = map[string][]string{
	"sad":     {"*frown*"},
	"happy":   {"*smiles*", "*slightly smiles*", "*big smile*", "*laughs*"},
	"excited": {"*excitedly*", "*excited*"},
	"awkward": {"*laughs nervously*"},
}

// checkOrder keeps detection deterministic when several markers appear;
// the last matching category wins, mirroring repeated reassignment.
var checkOrder = []string{"sad", "happy", "excited", "awkward"}

type Detector struct {
	mu      sync.Mutex
	current string
}

func NewDetector() *Detector {
	return &Detector{}
}

// Check scans the text and remembers the detected expression, if any.
func (d *Detector) Check(text string) {
	lower := strings.ToLower(text)

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, emotion := range checkOrder {
		for _, marker := range markers[emotion] {
			if strings.Contains(lower, marker) {
				d.current = emotion
			}
		}
	}
}

// Current returns the most recent detected expression.
func (d *Detector) Current() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current, d.current != ""
}
