package governance

import (
	"context"
	"testing"
)

func TestEvaluate_AllowsCleanCopy(t *testing.T) {
	e := NewDefaultPolicyEngine().WithRetailDefaults()

	res, err := e.Evaluate(context.Background(), Request{
		Channel: "instagram",
		Content: "Fresh fall styles just landed. 20% off this weekend only!",
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Effect != EffectAllow {
		t.Errorf("clean copy should be allowed, got %s: %s", res.Effect, res.Reason)
	}
}

func TestEvaluate_DeniesRestrictedChannel(t *testing.T) {
	e := NewDefaultPolicyEngine()
	e.DenyChannel("sms")

	res, err := e.Evaluate(context.Background(), Request{Channel: "sms", Content: "hello"})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Effect != EffectDeny {
		t.Error("restricted channel should be denied")
	}
}

func TestEvaluate_DeniesRestrictedContent(t *testing.T) {
	e := NewDefaultPolicyEngine().WithRetailDefaults()

	for _, content := range []string{
		"Guaranteed results or your money back!",
		"Our supplement cures fatigue overnight",
		"This is a 100% safe purchase",
	} {
		res, err := e.Evaluate(context.Background(), Request{Channel: "facebook", Content: content})
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		if res.Effect != EffectDeny {
			t.Errorf("copy %q should be denied", content)
		}
	}
}

func TestDenyContent_RejectsBadPattern(t *testing.T) {
	e := NewDefaultPolicyEngine()
	if err := e.DenyContent("(unclosed"); err == nil {
		t.Error("invalid regex should be rejected")
	}
}
