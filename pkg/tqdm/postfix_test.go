package tqdm

import "testing"

func TestPostfixEmpty(t *testing.T) {
	p := &Postfix{}
	if got := p.Format(); got != "" {
		t.Errorf("empty Format() = %q, want \"\"", got)
	}
	if p.Len() != 0 {
		t.Errorf("empty Len() = %d, want 0", p.Len())
	}
}

func TestPostfixNewestFirst(t *testing.T) {
	p := &Postfix{}
	p.Add("a", "1")
	p.Add("b", "2")

	if got := p.Format(); got != "b=2, a=1" {
		t.Errorf("Format() = %q, want %q", got, "b=2, a=1")
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestPostfixTypedValues(t *testing.T) {
	p := &Postfix{}
	p.AddInt("count", 42)
	p.AddFloat("loss", 0.0312456)
	p.AddFloat("acc", 3.14159)

	if got := p.Format(); got != "acc=3.14, loss=0.0312, count=42" {
		t.Errorf("Format() = %q, want %q", got, "acc=3.14, loss=0.0312, count=42")
	}
}
