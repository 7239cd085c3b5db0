package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/tmc/langchaingo/prompts"

	"github.com/rahul/bazari/internal/campaign"
	"github.com/rahul/bazari/internal/deploy"
	"github.com/rahul/bazari/internal/marketing"
	"github.com/rahul/bazari/internal/observability"
	"github.com/rahul/bazari/internal/provider"
	"github.com/rahul/bazari/internal/store"
	"github.com/rahul/bazari/pkg/config"
)

// Modules bundles the five domain modules the agent can dispatch to.
type Modules struct {
	Acquisition marketing.Module
	Retention   marketing.Module
	Digital     marketing.Module
	InStore     marketing.Module
	Analytics   marketing.Module
}

// dispatch maps every goal type onto a module. Seasonal campaigns run
// through acquisition and community engagement through digital, which
// own the closest personas.
func (m Modules) dispatch() map[GoalType]marketing.Module {
	return map[GoalType]marketing.Module{
		GoalCustomerAcquisition: m.Acquisition,
		GoalCustomerRetention:   m.Retention,
		GoalInStoreMarketing:    m.InStore,
		GoalDigitalPresence:     m.Digital,
		GoalSeasonalCampaign:    m.Acquisition,
		GoalAnalyticsInsights:   m.Analytics,
		GoalCommunityEngagement: m.Digital,
	}
}

// Deployer publishes finished campaign content. Satisfied by
// deploy.Service.
type Deployer interface {
	DeployCampaign(ctx context.Context, c *campaign.Campaign, subject, body string, hashtags []string) (*deploy.Report, error)
}

// Agent plans marketing goals with the provider, executes the plan
// through domain modules, and optionally turns finished goals into
// live campaigns.
type Agent struct {
	Name string

	gen     provider.TextGenerator
	modules map[GoalType]marketing.Module
	store   config.StoreContext
	prompts *PromptManager
	logger  *observability.Logger

	// optional campaign wiring
	Campaigns        *campaign.Registry
	Deployer         Deployer
	CampaignDefaults config.CampaignConfig
	History          *store.HistoryStore

	mu    sync.Mutex
	goals []*Goal
}

func New(gen provider.TextGenerator, mods Modules, store config.StoreContext, pm *PromptManager, logger *observability.Logger) *Agent {
	return &Agent{
		Name:    "Retail Marketing Agent",
		gen:     gen,
		modules: mods.dispatch(),
		store:   store,
		prompts: pm,
		logger:  logger,
	}
}

// SetGoal registers a new marketing goal. Unknown goal types are
// rejected and priority is clamped to 1..5.
func (a *Agent) SetGoal(goalType GoalType, target, timeframe, description string, metrics map[string]any, priority int) (*Goal, error) {
	if _, ok := a.modules[goalType]; !ok {
		return nil, &provider.ValidationError{Field: "goal_type", Reason: fmt.Sprintf("unknown goal type %q", goalType)}
	}
	if priority < 1 {
		priority = 1
	}
	if priority > 5 {
		priority = 5
	}
	if description == "" {
		description = fmt.Sprintf("Achieve %s within %s", target, timeframe)
	}

	g := newGoal(goalType, description, target, timeframe, metrics, priority)

	a.mu.Lock()
	a.goals = append(a.goals, g)
	a.mu.Unlock()

	return g, nil
}

// Plan asks the provider for an execution plan and attaches the
// parsed subtasks to the goal. When the response yields no numbered
// steps, a standard five-step plan is used instead.
func (a *Agent) Plan(ctx context.Context, g *Goal) ([]*Subtask, error) {
	observability.SetStatus(observability.PhasePlanning, g.Description)

	system, err := a.renderPrompt("planner_system",
		[]string{"client_name", "store_type", "has_online_store", "location"},
		map[string]any{
			"client_name":      a.store.Name,
			"store_type":       a.store.Type,
			"has_online_store": a.store.HasOnlineStore,
			"location":         a.store.Location,
		})
	if err != nil {
		return nil, err
	}
	user, err := a.renderPrompt("planner_user",
		[]string{"goal_type", "target", "timeframe", "description"},
		map[string]any{
			"goal_type":   string(g.Type),
			"target":      g.Target,
			"timeframe":   g.Timeframe,
			"description": g.Description,
		})
	if err != nil {
		return nil, err
	}

	text, err := a.gen.Generate(ctx, system, user)
	if err != nil {
		return nil, err
	}

	subtasks := parseSubtasks(text)
	if len(subtasks) == 0 {
		log.Printf("Plan for goal %s yielded no parseable steps, using default plan", g.ID)
		subtasks = defaultSubtasks()
	}

	g.Subtasks = subtasks
	a.logger.LogPlan(g.ID, len(subtasks))
	return subtasks, nil
}

func (a *Agent) renderPrompt(name string, vars []string, values map[string]any) (string, error) {
	tpl := prompts.NewPromptTemplate(a.prompts.Get(name), vars)
	out, err := tpl.Format(values)
	if err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", name, err)
	}
	return out, nil
}

// SubtaskOutcome is one entry of an execution's aggregate result.
type SubtaskOutcome struct {
	SubtaskID string            `json:"subtask_id"`
	Name      string            `json:"name"`
	Status    SubtaskStatus     `json:"status"`
	Output    *marketing.Result `json:"output,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// ExecutionResult aggregates one entry per subtask, attempted or not.
type ExecutionResult struct {
	GoalID     string           `json:"goal_id"`
	GoalType   GoalType         `json:"goal_type"`
	Status     GoalStatus       `json:"status"`
	Outcomes   []SubtaskOutcome `json:"outcomes"`
	CampaignID string           `json:"campaign_id,omitempty"`
}

// Execute runs a pending goal's subtasks in order through the goal
// type's module. The first subtask failure fails the whole goal and
// the remaining subtasks are not attempted. A fully executed goal is
// marked completed and, when campaign wiring is present, becomes a
// live campaign.
func (a *Agent) Execute(ctx context.Context, g *Goal) (*ExecutionResult, error) {
	if g.Status != GoalPending {
		return nil, &provider.ValidationError{Field: "status", Reason: fmt.Sprintf("goal is %s, only pending goals can be executed", g.Status)}
	}

	now := time.Now()
	g.Status = GoalInProgress
	g.StartedAt = &now

	observability.SetStatus(observability.PhaseExecuting, g.Description)
	defer observability.SetStatus(observability.PhaseIdle, "")

	if len(g.Subtasks) == 0 {
		if _, err := a.Plan(ctx, g); err != nil {
			g.Status = GoalFailed
			g.FailureReason = fmt.Sprintf("planning failed: %v", err)
			return nil, err
		}
		observability.SetStatus(observability.PhaseExecuting, g.Description)
	}

	module := a.modules[g.Type]

	for _, st := range g.Subtasks {
		st.Status = SubtaskInProgress
		a.logger.LogStep(g.ID, st.Name, string(SubtaskInProgress))

		res, err := module.RunSubtask(ctx, st.Name+": "+st.Description, a.store)
		if err != nil {
			st.Status = SubtaskFailed
			st.Error = err.Error()
			g.Status = GoalFailed
			g.FailureReason = fmt.Sprintf("subtask %q failed: %v", st.Name, err)
			a.logger.LogStep(g.ID, st.Name, string(SubtaskFailed))
			log.Printf("Goal %s failed at subtask %q: %v", g.ID, st.Name, err)
			break
		}

		st.Status = SubtaskCompleted
		st.Result = &res
		a.logger.LogStep(g.ID, st.Name, string(SubtaskCompleted))
	}

	result := &ExecutionResult{GoalID: g.ID, GoalType: g.Type}
	for _, st := range g.Subtasks {
		result.Outcomes = append(result.Outcomes, SubtaskOutcome{
			SubtaskID: st.ID,
			Name:      st.Name,
			Status:    st.Status,
			Output:    st.Result,
			Error:     st.Error,
		})
	}

	if g.Status != GoalFailed {
		g.Status = GoalCompleted
		done := time.Now()
		g.CompletedAt = &done
		a.finishCampaign(ctx, g, result)
	}
	result.Status = g.Status
	g.Results["execution"] = result

	return result, nil
}

// ExecuteAll executes every pending goal in insertion order.
func (a *Agent) ExecuteAll(ctx context.Context) []*ExecutionResult {
	a.mu.Lock()
	pending := make([]*Goal, 0, len(a.goals))
	for _, g := range a.goals {
		if g.Status == GoalPending {
			pending = append(pending, g)
		}
	}
	a.mu.Unlock()

	var results []*ExecutionResult
	for _, g := range pending {
		res, err := a.Execute(ctx, g)
		if err != nil {
			log.Printf("Execution of goal %s aborted: %v", g.ID, err)
			continue
		}
		results = append(results, res)
	}
	return results
}

// campaignTypeFor maps goal types onto campaign types. Analytics
// goals produce insight, not a campaign.
func campaignTypeFor(t GoalType) (campaign.Type, bool) {
	switch t {
	case GoalCustomerAcquisition:
		return campaign.TypeAcquisition, true
	case GoalCustomerRetention:
		return campaign.TypeRetention, true
	case GoalSeasonalCampaign:
		return campaign.TypeSeasonal, true
	case GoalInStoreMarketing:
		return campaign.TypeEvent, true
	case GoalDigitalPresence, GoalCommunityEngagement:
		return campaign.TypeBrandAwareness, true
	default:
		return "", false
	}
}

// finishCampaign turns a completed goal into a launched campaign and
// hands its content to the deployer. Failures here are logged, never
// propagated: the goal itself already succeeded.
func (a *Agent) finishCampaign(ctx context.Context, g *Goal, result *ExecutionResult) {
	if a.Campaigns == nil {
		return
	}
	typ, ok := campaignTypeFor(g.Type)
	if !ok {
		return
	}

	name := g.Target
	if name == "" {
		name = string(g.Type)
	}
	budget := a.CampaignDefaults.DefaultBudget
	days := ParseTimeframe(g.Timeframe)
	start := time.Now()

	c, err := a.Campaigns.Create(name, typ, g.Description, start, start.AddDate(0, 0, days), budget, metricTargets(g.Metrics))
	if err != nil {
		log.Printf("Could not create campaign for goal %s: %v", g.ID, err)
		return
	}
	a.Campaigns.Launch(c.ID)
	result.CampaignID = c.ID
	g.Results["campaign_id"] = c.ID

	if a.Deployer == nil {
		return
	}

	observability.SetStatus(observability.PhaseDeploying, name)

	body := contentFromOutcomes(result.Outcomes)
	hashtags := marketing.GenerateHashtags(body, 5)
	report, err := a.Deployer.DeployCampaign(ctx, c, name, body, hashtags)
	if err != nil {
		log.Printf("Deployment failed for campaign %s: %v", c.ID, err)
		return
	}
	a.logger.LogDeploy(c.ID, len(report.Published), len(report.Failed))
	g.Results["deployment"] = report
}

// contentFromOutcomes picks the last completed subtask output as the
// publishable copy; later steps refine earlier ones.
func contentFromOutcomes(outcomes []SubtaskOutcome) string {
	for i := len(outcomes) - 1; i >= 0; i-- {
		if outcomes[i].Status == SubtaskCompleted && outcomes[i].Output != nil && outcomes[i].Output.RawText != "" {
			return outcomes[i].Output.RawText
		}
	}
	return ""
}

func metricTargets(metrics map[string]any) map[string]float64 {
	if len(metrics) == 0 {
		return nil
	}
	out := make(map[string]float64)
	for k, v := range metrics {
		switch n := v.(type) {
		case float64:
			out[k] = n
		case int:
			out[k] = float64(n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Evaluate asks the provider for a post-mortem of a completed goal
// and stores the verdict on the goal.
func (a *Agent) Evaluate(ctx context.Context, g *Goal) (string, error) {
	if g.Status != GoalCompleted {
		return "", &provider.ValidationError{Field: "status", Reason: "only completed goals can be evaluated"}
	}

	var summary strings.Builder
	for _, st := range g.Subtasks {
		fmt.Fprintf(&summary, "- %s: %s\n", st.Name, st.Status)
	}

	system, err := a.renderPrompt("evaluator_system", nil, map[string]any{})
	if err != nil {
		return "", err
	}
	user, err := a.renderPrompt("evaluator_user",
		[]string{"description", "target", "timeframe", "results_summary"},
		map[string]any{
			"description":     g.Description,
			"target":          g.Target,
			"timeframe":       g.Timeframe,
			"results_summary": summary.String(),
		})
	if err != nil {
		return "", err
	}

	text, err := a.gen.Generate(ctx, system, user)
	if err != nil {
		return "", err
	}
	g.Results["evaluation"] = text
	return text, nil
}

// CancelGoal moves a pending or in-progress goal to cancelled.
// Returns false for unknown ids and finished goals.
func (a *Agent) CancelGoal(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, g := range a.goals {
		if g.ID != id {
			continue
		}
		if g.Status != GoalPending && g.Status != GoalInProgress {
			return false
		}
		g.Status = GoalCancelled
		return true
	}
	return false
}

// Goals returns the registered goals in insertion order.
func (a *Agent) Goals() []*Goal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*Goal(nil), a.goals...)
}

// Report summarizes the agent's goal book.
type Report struct {
	TotalGoals     int                `json:"total_goals"`
	ByStatus       map[GoalStatus]int `json:"by_status"`
	Goals          []*Goal            `json:"goals"`
	RecentActivity []store.Generation `json:"recent_activity,omitempty"`
}

func (a *Agent) StatusReport() Report {
	a.mu.Lock()
	r := Report{
		TotalGoals: len(a.goals),
		ByStatus:   make(map[GoalStatus]int),
		Goals:      append([]*Goal(nil), a.goals...),
	}
	for _, g := range a.goals {
		r.ByStatus[g.Status]++
	}
	a.mu.Unlock()

	if a.History != nil {
		if gens, err := a.History.RecentGenerations(10); err == nil {
			r.RecentActivity = gens
		}
	}
	return r
}
