package transform

import (
	"errors"
	"fmt"
)

// Processor runs a pipeline of transforms: 0..N for Forward, N..0 for Backward.
type Processor struct {
	transforms []Transform
}

// NewProcessor creates a processor with a defined pipeline.
// Use NewNoOpTransform() for an explicitly empty pipeline.
func NewProcessor(pipeline ...Transform) (*Processor, error) {
	if len(pipeline) == 0 {
		return nil, errors.New("processor requires at least one transform; use NewNoOpTransform() for an empty pipeline")
	}
	s := make([]Transform, len(pipeline))
	copy(s, pipeline)
	return &Processor{transforms: s}, nil
}

// Forward applies the pipeline in order.
func (p *Processor) Forward(data []byte) ([]byte, error) {
	var err error
	cur := data
	for i, t := range p.transforms {
		cur, err = t.Apply(cur)
		if err != nil {
			return nil, fmt.Errorf("forward: transform %d (%T) Apply failed: %w", i, t, err)
		}
	}
	return cur, nil
}

// Backward reverses the pipeline, last transform first.
func (p *Processor) Backward(data []byte) ([]byte, error) {
	var err error
	cur := data
	for i := len(p.transforms) - 1; i >= 0; i-- {
		t := p.transforms[i]
		cur, err = t.Reverse(cur)
		if err != nil {
			return nil, fmt.Errorf("backward: transform %d (%T) Reverse failed: %w", i, t, err)
		}
	}
	return cur, nil
}
