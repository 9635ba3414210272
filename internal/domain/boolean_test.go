package domain

import (
	"errors"
	"testing"
)

func TestBooleanCodeParity(t *testing.T) {
	for i := 0; i < int(booleanCodeCount); i++ {
		b := BooleanCode(i)
		if b.IsTrue() != (i%2 == 0) {
			t.Errorf("expected IsTrue()=%v for ordinal %d (%s)", i%2 == 0, i, b)
		}
		if b.IsFalse() == b.IsTrue() {
			t.Errorf("expected IsFalse to be the negation of IsTrue for %s", b)
		}
	}
}

func TestBooleanCodeDefault(t *testing.T) {
	var b BooleanCode
	if b != BoolYes {
		t.Errorf("expected zero value to be yes, got %s", b)
	}
	if !b.IsTrue() {
		t.Error("expected default to be true")
	}
}

func TestBooleanCodeTransforms(t *testing.T) {
	t.Run("enable set is true", func(t *testing.T) {
		var b BooleanCode
		b.EnableWith(BoolSet)
		if !b.IsTrue() || b != BoolSet {
			t.Errorf("expected set, got %s", b)
		}
	})

	t.Run("disable unset is false", func(t *testing.T) {
		var b BooleanCode
		b.DisableWith(BoolUnset)
		if b.IsTrue() || b != BoolUnset {
			t.Errorf("expected unset, got %s", b)
		}
	})

	t.Run("enable with odd hint moves to the next even ordinal", func(t *testing.T) {
		var b BooleanCode
		b.EnableWith(BoolNo)
		if b != BoolOn {
			t.Errorf("expected on, got %s", b)
		}
		b.EnableWith(BoolUnset)
		if b != BoolYes {
			t.Errorf("expected wrap to yes, got %s", b)
		}
	})

	t.Run("disable with even hint moves to its partner", func(t *testing.T) {
		var b BooleanCode
		b.DisableWith(BoolUp)
		if b != BoolDown {
			t.Errorf("expected down, got %s", b)
		}
	})
}

func TestBooleanCodeWrappers(t *testing.T) {
	tests := []struct {
		name     string
		apply    func(*BooleanCode)
		expected BooleanCode
	}{
		{"yes", (*BooleanCode).Yes, BoolYes},
		{"no", (*BooleanCode).No, BoolNo},
		{"on", (*BooleanCode).On, BoolOn},
		{"off", (*BooleanCode).Off, BoolOff},
		{"enable", (*BooleanCode).Enable, BoolEnable},
		{"disable", (*BooleanCode).Disable, BoolDisable},
		{"enabled", (*BooleanCode).Enabled, BoolEnabled},
		{"disabled", (*BooleanCode).Disabled, BoolDisabled},
		{"up", (*BooleanCode).Up, BoolUp},
		{"down", (*BooleanCode).Down, BoolDown},
		{"set", (*BooleanCode).Set, BoolSet},
		{"unset", (*BooleanCode).Unset, BoolUnset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BoolDisabled
			tt.apply(&b)
			if b != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, b)
			}
			if b.String() != tt.name {
				t.Errorf("expected text %q, got %q", tt.name, b.String())
			}
		})
	}
}

func TestBooleanCodeAssign(t *testing.T) {
	tests := []struct {
		input    string
		expected BooleanCode
	}{
		{"yes", BoolYes},
		{"ENABLED", BoolEnabled},
		{" Off ", BoolOff},
		{"true", BoolYes},
		{"False", BoolNo},
		{"7", BoolDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var b BooleanCode
			if err := b.Assign(tt.input); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, b)
			}
		})
	}

	t.Run("unknown symbol keeps prior value", func(t *testing.T) {
		b := BoolDown
		err := b.Assign("maybe")
		if !errors.Is(err, ErrFormat) {
			t.Errorf("expected format error, got %v", err)
		}
		if b != BoolDown {
			t.Errorf("expected down to be kept, got %s", b)
		}
	})

	t.Run("ordinal out of range", func(t *testing.T) {
		var b BooleanCode
		if err := b.Assign("12"); !errors.Is(err, ErrRange) {
			t.Errorf("expected range error, got %v", err)
		}
	})
}
