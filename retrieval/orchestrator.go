// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/menukb/ai"
	"github.com/poiesic/menukb/kb"
	"github.com/poiesic/menukb/query"
)

const (
	defaultMenuCap         = 15
	defaultPerSection      = 3
	defaultK               = 5
	defaultMinAnswerLength = 20
	vegItemCap             = 20
)

// Orchestrator answers questions over a knowledge base.
// It holds no per-question state and is safe for concurrent use as long as
// each caller passes its own Session.
type Orchestrator struct {
	kb         *kb.KnowledgeBase
	generator  ai.Generator
	classifier *query.Classifier
	strategies []Strategy
	monitor    Monitor
	base       *slog.Logger
	logger     *slog.Logger

	menuCap         int
	perSection      int
	k               int
	minAnswerLength int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithGenerator sets the answer generator. Without one the generation
// strategy always declines.
func WithGenerator(g ai.Generator) Option {
	return func(o *Orchestrator) error {
		o.generator = g
		return nil
	}
}

// WithClassifier replaces the default classifier, which resolves names
// against the knowledge base.
func WithClassifier(c *query.Classifier) Option {
	return func(o *Orchestrator) error {
		if c != nil {
			o.classifier = c
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.base = logger
		return nil
	}
}

// WithMenuCap sets the most menu items handed to the generator for one
// restaurant.
func WithMenuCap(n int) Option {
	return positive("menu cap", n, func(o *Orchestrator) { o.menuCap = n })
}

// WithPerSection sets how many items each section contributes when a menu
// is cut down to the cap.
func WithPerSection(n int) Option {
	return positive("per-section limit", n, func(o *Orchestrator) { o.perSection = n })
}

// WithK sets the number of semantic search results for general questions.
func WithK(n int) Option {
	return positive("k", n, func(o *Orchestrator) { o.k = n })
}

// WithMinAnswerLength sets the length below which a generated answer is
// treated as unhelpful.
func WithMinAnswerLength(n int) Option {
	return func(o *Orchestrator) error {
		if n < 0 {
			return fmt.Errorf("%w: minimum answer length %d", ErrInvalidOption, n)
		}
		o.minAnswerLength = n
		return nil
	}
}

// WithMonitor sets hooks that observe each question.
func WithMonitor(m Monitor) Option {
	return func(o *Orchestrator) error {
		if m == nil {
			m = &noopMonitor{}
		}
		o.monitor = m
		return nil
	}
}

func positive(name string, n int, set func(*Orchestrator)) Option {
	return func(o *Orchestrator) error {
		if n < 1 {
			return fmt.Errorf("%w: %s %d", ErrInvalidOption, name, n)
		}
		set(o)
		return nil
	}
}

// NewOrchestrator creates an Orchestrator over knowledge.
func NewOrchestrator(knowledge *kb.KnowledgeBase, opts ...Option) (*Orchestrator, error) {
	if knowledge == nil {
		return nil, ErrKnowledgeBaseRequired
	}

	o := &Orchestrator{
		kb:              knowledge,
		monitor:         &noopMonitor{},
		base:            slog.Default(),
		menuCap:         defaultMenuCap,
		perSection:      defaultPerSection,
		k:               defaultK,
		minAnswerLength: defaultMinAnswerLength,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	o.logger = o.base.With("component", "orchestrator")
	if o.classifier == nil {
		o.classifier = query.NewClassifier(query.WithResolver(knowledge), query.WithLogger(o.base))
	}
	o.strategies = []Strategy{
		&structuredLookup{o: o},
		&generationFallback{o: o},
		&semanticFallback{o: o},
	}
	return o, nil
}

// Classify exposes the orchestrator's classifier.
func (o *Orchestrator) Classify(question string) query.Classification {
	return o.classifier.Classify(question)
}

// Ask answers question and records the exchange in session, which may be
// nil. It never fails; when no strategy can answer the text is NotFoundText.
func (o *Orchestrator) Ask(ctx context.Context, session *Session, question string) Answer {
	cls := o.classifier.Classify(question)
	o.monitor.Classified(cls)
	session.record(RoleUser, question, cls.Intent)

	answer := o.answer(ctx, cls)

	session.record(RoleAssistant, answer.Text, answer.Intent)
	o.monitor.Finish(answer)
	o.logger.Debug("question answered",
		"intent", answer.Intent.String(),
		"source", answer.Source.String(),
		"chars", len(answer.Text))
	return answer
}

func (o *Orchestrator) answer(ctx context.Context, cls query.Classification) Answer {
	if strings.TrimSpace(cls.Question) == "" {
		return Answer{Text: NotFoundText, Intent: cls.Intent, Source: SourceNotFound}
	}
	for _, s := range o.strategies {
		a, ok := s.Answer(ctx, cls)
		o.monitor.StrategyTried(s.Name(), ok)
		if ok {
			a.Intent = cls.Intent
			return a
		}
	}
	return Answer{Text: NotFoundText, Intent: cls.Intent, Source: SourceNotFound}
}
