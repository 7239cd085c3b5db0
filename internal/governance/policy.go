package governance

import (
	"context"
	"fmt"
	"regexp"
)

// Effect defines the result of a policy evaluation.
type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
)

// Request contains outbound marketing copy to be evaluated before it
// reaches any publishing channel.
type Request struct {
	Channel    string
	CampaignID string
	Content    string
}

// Result contains the outcome of a policy evaluation.
type Result struct {
	Effect Effect
	Reason string
}

// PolicyEngine evaluates outbound content against a set of rules.
type PolicyEngine interface {
	Evaluate(ctx context.Context, req Request) (Result, error)
}

// DefaultPolicyEngine blocks restricted channels and copy that matches
// a deny pattern. Everything else is approved.
type DefaultPolicyEngine struct {
	DeniedChannels map[string]bool
	DeniedRegex    []*regexp.Regexp
}

func NewDefaultPolicyEngine() *DefaultPolicyEngine {
	return &DefaultPolicyEngine{
		DeniedChannels: make(map[string]bool),
		DeniedRegex:    make([]*regexp.Regexp, 0),
	}
}

func (e *DefaultPolicyEngine) DenyChannel(name string) {
	e.DeniedChannels[name] = true
}

func (e *DefaultPolicyEngine) DenyContent(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	e.DeniedRegex = append(e.DeniedRegex, re)
	return nil
}

// WithRetailDefaults installs deny rules for claims a small retailer
// should never publish without legal review.
func (e *DefaultPolicyEngine) WithRetailDefaults() *DefaultPolicyEngine {
	for _, pattern := range []string{
		`(?i)\bguaranteed\s+(results|returns|profit)`,
		`(?i)\b(cure|cures|heals)\b`,
		`(?i)\bfree\s+money\b`,
		`(?i)\brisk[- ]free\s+investment`,
		`(?i)100%\s+(safe|effective|guaranteed)`,
	} {
		_ = e.DenyContent(pattern)
	}
	return e
}

func (e *DefaultPolicyEngine) Evaluate(ctx context.Context, req Request) (Result, error) {
	if e.DeniedChannels[req.Channel] {
		return Result{
			Effect: EffectDeny,
			Reason: fmt.Sprintf("Channel '%s' is restricted by system policy", req.Channel),
		}, nil
	}

	for _, re := range e.DeniedRegex {
		if re.MatchString(req.Content) {
			return Result{
				Effect: EffectDeny,
				Reason: fmt.Sprintf("Content matches restricted pattern: %s", re.String()),
			}, nil
		}
	}

	return Result{
		Effect: EffectAllow,
		Reason: "Approved by default policy",
	}, nil
}
