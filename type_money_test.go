package folio

import (
	"strings"
	"testing"
)

func TestMoneySignedString(t *testing.T) {
	if got := M(0, "HKD").SignedString(); got != "-" {
		t.Errorf("zero SignedString() = %q, want -", got)
	}
	if got := M(12.5, "HKD").SignedString(); !strings.HasPrefix(got, "+") {
		t.Errorf("positive SignedString() = %q, want a + prefix", got)
	}
	if got := M(-12.5, "HKD").SignedString(); !strings.HasPrefix(got, "-") {
		t.Errorf("negative SignedString() = %q, want a - prefix", got)
	}
}

func TestMoneyString(t *testing.T) {
	got := M(1234.5, "HKD").String()
	if !strings.Contains(got, "1,234.50") {
		t.Errorf("String() = %q, want the amount grouped with two decimals", got)
	}
}

func TestQuantityStrings(t *testing.T) {
	if got := Q(10.5).String(); got != "10.5000" {
		t.Errorf("String() = %q, want 10.5000", got)
	}
	if got := Q(0).SignedString(); got != "-" {
		t.Errorf("zero SignedString() = %q, want -", got)
	}
	if got := Q(2.5).SignedString(); got != "+2.5000" {
		t.Errorf("SignedString() = %q, want +2.5000", got)
	}
	if got := Q(-2.5).SignedString(); got != "-2.5000" {
		t.Errorf("SignedString() = %q, want -2.5000", got)
	}
}

func TestPercentStrings(t *testing.T) {
	if got := Percent(6.66666).String(); got != "6.67%" {
		t.Errorf("String() = %q, want 6.67%%", got)
	}
	if got := Percent(0).SignedString(); got != "-" {
		t.Errorf("zero SignedString() = %q, want -", got)
	}
	if got := Percent(-3.5).SignedString(); got != "-3.50%" {
		t.Errorf("SignedString() = %q, want -3.50%%", got)
	}
	if !Percent(6.66664).Equal(6.66666) {
		t.Error("Equal() must tolerate sub-precision differences")
	}
	if Percent(1).Equal(2) {
		t.Error("Equal() must distinguish different percentages")
	}
}
