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


// Package retrieval answers questions by sequencing knowledge-base lookups.
//
// The Orchestrator classifies a question, then tries its strategies in a
// fixed order: a structured lookup answered straight from the knowledge
// base, a generated answer grounded on retrieved menu items, and finally a
// plain semantic-search summary. Restaurant lookups escalate through an
// exact, loose, substring and semantic ladder where each step only runs
// when the previous one found nothing.
//
// Ask never returns an error. Upstream failures are logged and recovered by
// the next strategy, and when all of them decline the caller gets
// NotFoundText.
package retrieval
