package marketing

import (
	"context"
	"encoding/json"

	"github.com/rahul/bazari/internal/provider"
	"github.com/rahul/bazari/pkg/config"
	"github.com/tmc/langchaingo/prompts"
)

const analyticsPersona = `You are an expert retail analytics consultant.
Analyze business data and provide actionable, data-driven insights.`

// AnalyticsModule turns sales and customer data into narrative
// insight reports.
type AnalyticsModule struct {
	gen provider.TextGenerator
}

func NewAnalyticsModule(gen provider.TextGenerator) *AnalyticsModule {
	return &AnalyticsModule{gen: gen}
}

func (m *AnalyticsModule) Name() string {
	return "analytics_insights"
}

func (m *AnalyticsModule) RunSubtask(ctx context.Context, task string, store config.StoreContext) (Result, error) {
	return runSubtask(ctx, m.gen, analyticsPersona, task, store)
}

var salesAnalysisPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}
Time Period: {{.timePeriod}}

Sales Data:
{{.salesData}}
{{.marketTrends}}
Provide analysis including:
1. Key performance indicators (KPIs) summary
2. Top performing products/categories
3. Underperforming areas
4. Sales trends and patterns
5. Customer segment analysis
6. Actionable recommendations
7. Growth opportunities

Be specific and data-driven in your insights.`,
	[]string{"storeName", "storeType", "timePeriod", "salesData", "marketTrends"})

// AnalyzeSalesData produces an insight report over a metrics map.
// marketTrends is optional research context (web search results);
// empty means analysis runs on the sales data alone.
func (m *AnalyticsModule) AnalyzeSalesData(ctx context.Context, salesData map[string]any, timePeriod, marketTrends string, store config.StoreContext) (Result, error) {
	encoded, err := json.MarshalIndent(salesData, "", "  ")
	if err != nil {
		return Result{}, &provider.ValidationError{Field: "sales_data", Reason: "not serializable"}
	}

	trendSection := ""
	if marketTrends != "" {
		trendSection = "\nMarket Trends (web research):\n" + marketTrends + "\n"
	}

	user, err := salesAnalysisPrompt.Format(map[string]any{
		"storeName":    store.Name,
		"storeType":    store.Type,
		"timePeriod":   timePeriod,
		"salesData":    string(encoded),
		"marketTrends": trendSection,
	})
	if err != nil {
		return Result{}, err
	}

	text, err := m.gen.Generate(ctx, analyticsPersona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}

var segmentationPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}
Segmentation Criteria: {{.criteria}}

Customer Data Summary:
- Total Customers: {{.customerCount}}

Create customer segments including:
1. Segment names and descriptions
2. Size of each segment
3. Key characteristics of each segment
4. Purchase behavior patterns
5. Lifetime value potential
6. Recommended marketing strategies for each segment

Create 4-6 actionable segments.`,
	[]string{"storeName", "storeType", "criteria", "customerCount"})

// SegmentCustomers groups a customer population under the given
// criteria (RFM, demographics, behavior).
func (m *AnalyticsModule) SegmentCustomers(ctx context.Context, customerCount int, criteria string, store config.StoreContext) (Result, error) {
	if customerCount < 0 {
		return Result{}, &provider.ValidationError{Field: "customer_count", Reason: "must be >= 0"}
	}

	user, err := segmentationPrompt.Format(map[string]any{
		"storeName":     store.Name,
		"storeType":     store.Type,
		"criteria":      criteria,
		"customerCount": customerCount,
	})
	if err != nil {
		return Result{}, err
	}

	const persona = `You are an expert in customer segmentation and targeting.
Create meaningful customer segments for personalized marketing.`

	text, err := m.gen.Generate(ctx, persona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}

var performanceReportPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}
Reporting Period: {{.period}}

Campaign Metrics:
{{.metrics}}

Write a performance report including:
1. Executive summary
2. Campaign-by-campaign highlights
3. Return on investment overview
4. Channels that over- and under-delivered
5. Recommendations for the next period

Keep it concise and decision-oriented.`,
	[]string{"storeName", "storeType", "period", "metrics"})

// GeneratePerformanceReport narrates campaign metrics for a period.
func (m *AnalyticsModule) GeneratePerformanceReport(ctx context.Context, metrics map[string]any, period string, store config.StoreContext) (Result, error) {
	encoded, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return Result{}, &provider.ValidationError{Field: "metrics", Reason: "not serializable"}
	}

	user, err := performanceReportPrompt.Format(map[string]any{
		"storeName": store.Name,
		"storeType": store.Type,
		"period":    period,
		"metrics":   string(encoded),
	})
	if err != nil {
		return Result{}, err
	}

	text, err := m.gen.Generate(ctx, analyticsPersona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}
