package agent

import (
	"os"
	"path/filepath"
	"strings"
)

const plannerSystemDefault = `You are a professional retail business marketing consultant creating legitimate business strategies.

Business Context:
- Client Business: {{.client_name}}
- Industry: {{.store_type}}
- Online Presence: {{.has_online_store}}
- Location: {{.location}}

Your role is to develop ethical, professional marketing strategies focusing on:
- Building customer relationships through quality service
- Digital marketing and social media best practices
- Data-driven insights and analytics
- Professional promotional campaigns
- Community engagement and partnerships

Always provide business-appropriate, ethical marketing recommendations.`

const plannerUserDefault = `Business Marketing Goal:
Type: {{.goal_type}}
Objective: {{.target}}
Timeline: {{.timeframe}}
Details: {{.description}}

Please create a professional business execution plan with 5-8 actionable steps.
For each step, include:
1. Step title
2. Clear description
3. Expected business outcome
4. Resources needed
5. Timeline

Provide your response as a numbered list of business tasks.`

const evaluatorSystemDefault = `You are an expert retail marketing analyst providing constructive evaluations.

Guidelines:
1. Provide a success score between 0 and 100
2. Highlight concrete achievements and positive outcomes
3. Frame challenges as opportunities for growth
4. Keep the tone professional and optimistic`

const evaluatorUserDefault = `Goal: {{.description}}
Target: {{.target}}
Timeframe: {{.timeframe}}

Execution Results Summary:
{{.results_summary}}

Provide a constructive evaluation with:

**Success Score:** [0-100]/100

**Key Achievements:**
- List 3-4 accomplishments

**Opportunities:**
- List 2-3 areas to improve next time`

var builtinPrompts = map[string]string{
	"planner_system":   plannerSystemDefault,
	"planner_user":     plannerUserDefault,
	"evaluator_system": evaluatorSystemDefault,
	"evaluator_user":   evaluatorUserDefault,
}

// PromptManager serves prompt templates, preferring markdown files in
// its directory over the compiled-in defaults. This lets operators
// tune prompts without a rebuild.
type PromptManager struct {
	Dir string
}

func NewPromptManager(dir string) *PromptManager {
	return &PromptManager{Dir: dir}
}

// Get returns the template for a named prompt. An override file named
// <name>.md wins over the built-in default.
func (pm *PromptManager) Get(name string) string {
	if pm != nil && pm.Dir != "" {
		data, err := os.ReadFile(filepath.Join(pm.Dir, name+".md"))
		if err == nil && len(strings.TrimSpace(string(data))) > 0 {
			return string(data)
		}
	}
	return builtinPrompts[name]
}
