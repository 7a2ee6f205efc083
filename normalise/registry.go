package normalise

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jmartinm/inspire-dojson/record"
)

// Names of the built-in normalisation steps.
const (
	StepStripEmpty  = "strip-empty"
	StepDedupeLists = "dedupe-lists"
)

var ErrUnknownStep = errors.New("unknown normalisation step")

// StepFunc is a single named normalisation step.
type StepFunc func(record.Value) record.Value

// Steps is a registry of named normalisation steps.
type Steps struct {
	sync.RWMutex
	steps map[string]StepFunc
}

func (s *Steps) Register(name string, step StepFunc) {
	s.Lock()
	defer s.Unlock()
	s.steps[name] = step
}

func (s *Steps) Get(name string) StepFunc {
	s.RLock()
	defer s.RUnlock()
	return s.steps[name]
}

func (s *Steps) Names() []string {
	s.RLock()
	defer s.RUnlock()
	names := []string{}
	for name := range s.steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply runs the named steps over v in order.
func (s *Steps) Apply(v record.Value, names ...string) (record.Value, error) {
	s.RLock()
	defer s.RUnlock()

	for _, name := range names {
		step := s.steps[name]
		if step == nil {
			return record.Value{}, fmt.Errorf("%w: %s", ErrUnknownStep, name)
		}
		v = step(v)
	}
	return v, nil
}

// Registry holds the built-in steps and any registered by callers.
var Registry = Steps{steps: map[string]StepFunc{}}

func init() {
	Registry.Register(StepStripEmpty, StripEmptyValues)
	Registry.Register(StepDedupeLists, DedupeAllLists)
}

// Apply runs the named steps from the default registry over v in order.
func Apply(v record.Value, steps ...string) (record.Value, error) {
	return Registry.Apply(v, steps...)
}
