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


// Package kb holds the restaurant knowledge base: the entity graph, the
// vector index over menu items and the structured lookups answered from them.
//
// A KnowledgeBase is immutable once constructed. Every lookup is read-only
// and safe for concurrent use without locking; New, Build, Open and
// FromSnapshot are the only constructors and must complete before queries
// are served.
//
// Lookups never fail on an unknown restaurant. They return an empty result,
// and HasRestaurant or PriceRange's PriceNotFound status tell the caller
// whether the restaurant exists at all.
package kb
