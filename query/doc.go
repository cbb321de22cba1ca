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


// Package query classifies restaurant questions into intents and extracts
// the entities each intent needs.
//
// Classification is deterministic and pattern based. Extraction runs ordered
// lists of independent Matchers where the first match wins, so each pattern
// can be tested on its own. A structured intent is only returned when its
// target can be resolved; otherwise the question is demoted to a more
// general intent instead of failing.
package query
