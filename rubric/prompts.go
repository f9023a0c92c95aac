/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"github.com/corretor-ai/corretor/prompt"
	"github.com/corretor-ai/corretor/schema"
)

// themePrompt gates the evaluation on theme adherence. The retrieved
// context arrives as a JSON array of fragments so the model can tell
// reference material apart from the essay under review.
var themePrompt = prompt.MustNew(`<task>
You are an expert ENEM essay grader. Decide whether the essay below
addresses its proposed topic.
</task>

# Essay topic:
{{topic}}

# Essay text:
{{essay}}

# Reference material on theme evaluation:
{{context}}

<instructions>
Classify the essay's adherence to the topic as exactly one of:
1. "Adequate" - the essay addresses the topic correctly
2. "Tangential" - the essay addresses the topic only partially
3. "OffTopic" - the essay does not address the proposed topic
</instructions>

<output_format>
Reply with a JSON object matching this schema:
` + "```json\n{{output_schema}}\n```" + `
</output_format>

Respond with only the JSON object, no additional text.`)

// themeSchema is the response contract embedded in themePrompt.
var themeSchema = schema.MustJSON[ThemeVerdict]()

// criterionPrompt is the shared skeleton of the five criterion
// evaluations; the per-criterion table binds its name, focus sections
// and retrieval context.
var criterionPrompt = prompt.MustNew(`<task>
You are an expert ENEM essay grader. Evaluate criterion {{criterion_id}}
({{criterion_name}}) in the essay below, scoring from 0 to 200.
</task>

{{topic_block}}{{focus_block}}# Essay text:
{{essay}}

# Reference material on this criterion:
{{context}}

<output_format>
Reply with a JSON object matching this schema:
` + "```json\n{{output_schema}}\n```" + `
</output_format>

Respond with only the JSON object, no additional text.`)

// criterionSchema is the response contract embedded in criterionPrompt.
var criterionSchema = schema.MustJSON[CriterionResult]()

// structurePrompt asks for a model outline for a topic. Free-text reply,
// no fence parsing.
var structurePrompt = prompt.MustNew(`<task>
You are an expert on ENEM essays. Based on the topic below, suggest a
detailed structure for a top-scoring essay.
</task>

# Essay topic:
{{topic}}

# Reference material on essay structure:
{{context}}

Provide:
1. A suggested approach to the topic
2. A structure for the introduction, with possible supporting references
3. A structure for each body paragraph, with example arguments
4. A structure for the conclusion, with a model intervention proposal

Be specific and tie every suggestion to the proposed topic.`)

// repertoirePrompt asks for an analysis of the essay's sociocultural
// repertoire. Free-text reply, no fence parsing.
var repertoirePrompt = prompt.MustNew(`<task>
You are an expert on ENEM essays. Analyze the sociocultural repertoire
used in the essay below.
</task>

# Essay text:
{{essay}}

# Candidate repertoire detected by a lexical scan:
{{candidates}}

# Reference material on sociocultural repertoire:
{{context}}

Provide:
1. Every sociocultural reference used (quotations, data, historical
   examples, institutions, laws)
2. An assessment of the quality and relevance of each
3. Additional references that would strengthen the argumentation

Be specific about how each reference relates to the essay's topic.`)
