// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package progress

import (
	"context"
	"sync"
	"time"
)

type spanKey struct{}

type Status string

const (
	StatusRunning  Status = "Running"
	StatusComplete Status = "Complete"
	StatusFailed   Status = "Failed"
)

// Observer is notified whenever a span makes progress.
type Observer func(name string, n int)

// Tracer collects root spans.
type Tracer struct {
	name     string
	spans    sync.Map
	observer Observer
}

func NewTracer(name string) *Tracer {
	return &Tracer{name: name}
}

// Observe sets the observer of all spans started under this tracer.
func (t *Tracer) Observe(observer Observer) {
	t.observer = observer
}

// Start creates a root span.
func (t *Tracer) Start(ctx context.Context, name string, total int) (context.Context, *Span) {
	span := newSpan(t.name, name, total, t.observer)
	t.spans.Store(name, span)
	return context.WithValue(ctx, spanKey{}, span), span
}

func (t *Tracer) List() []Progress {
	var progress []Progress
	t.spans.Range(func(_, value any) bool {
		progress = append(progress, value.(*Span).Progress())
		return true
	})
	return progress
}

type Span struct {
	mu       sync.Mutex
	tracer   string
	name     string
	status   Status
	total    int
	count    int
	err      error
	start    time.Time
	finish   time.Time
	observer Observer
	children sync.Map
}

func newSpan(tracer, name string, total int, observer Observer) *Span {
	return &Span{
		tracer:   tracer,
		name:     name,
		status:   StatusRunning,
		total:    total,
		start:    time.Now(),
		observer: observer,
	}
}

// Start creates a child span of the span in ctx. The span is detached if ctx carries
// no span.
func Start(ctx context.Context, name string, total int) (context.Context, *Span) {
	parent, ok := ctx.Value(spanKey{}).(*Span)
	if !ok {
		span := newSpan("", name, total, nil)
		return context.WithValue(ctx, spanKey{}, span), span
	}
	span := newSpan(parent.tracer, name, total, parent.observer)
	parent.children.Store(name, span)
	return context.WithValue(ctx, spanKey{}, span), span
}

// Add records n finished units of work. It is safe for concurrent use.
func (s *Span) Add(n int) {
	s.mu.Lock()
	s.count += n
	s.mu.Unlock()
	if s.observer != nil {
		s.observer(s.name, n)
	}
}

func (s *Span) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count = s.total
	s.status = StatusComplete
	s.finish = time.Now()
}

func (s *Span) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.status = StatusFailed
	s.finish = time.Now()
}

func (s *Span) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

func (s *Span) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := Progress{
		Tracer:     s.tracer,
		Name:       s.name,
		Status:     s.status,
		Count:      s.count,
		Total:      s.total,
		StartTime:  s.start,
		FinishTime: s.finish,
	}
	if s.err != nil {
		p.Error = s.err.Error()
	}
	return p
}

// Fail marks the span in ctx as failed.
func Fail(ctx context.Context, err error) {
	if span, ok := ctx.Value(spanKey{}).(*Span); ok {
		span.Fail(err)
	}
}

type Progress struct {
	Tracer     string
	Name       string
	Status     Status
	Error      string
	Count      int
	Total      int
	StartTime  time.Time
	FinishTime time.Time
}
