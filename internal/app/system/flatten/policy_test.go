package flatten

import "testing"

func TestParseNames(t *testing.T) {
	for _, o := range []Order{OrderPreOrder, OrderReverseStack} {
		got, err := ParseOrder(o.String())
		if err != nil || got != o {
			t.Errorf("ParseOrder(%q) = %v, %v", o.String(), got, err)
		}
	}
	for _, m := range []NegativeMode{NegativeLegacy, NegativeSigned} {
		got, err := ParseNegativeMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseNegativeMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	for _, m := range []InvalidMode{InvalidSkip, InvalidReject} {
		got, err := ParseInvalidMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseInvalidMode(%q) = %v, %v", m.String(), got, err)
		}
	}
}

func TestParseNames_Defaults(t *testing.T) {
	if o, err := ParseOrder(""); err != nil || o != OrderPreOrder {
		t.Errorf("ParseOrder(\"\") = %v, %v", o, err)
	}
	if m, err := ParseNegativeMode(""); err != nil || m != NegativeLegacy {
		t.Errorf("ParseNegativeMode(\"\") = %v, %v", m, err)
	}
	if m, err := ParseInvalidMode(""); err != nil || m != InvalidSkip {
		t.Errorf("ParseInvalidMode(\"\") = %v, %v", m, err)
	}
}

func TestParseNames_Unknown(t *testing.T) {
	if _, err := ParseOrder("bfs"); err == nil {
		t.Error("ParseOrder(bfs) should fail")
	}
	if _, err := ParseNegativeMode("abs"); err == nil {
		t.Error("ParseNegativeMode(abs) should fail")
	}
	if _, err := ParseInvalidMode("zero"); err == nil {
		t.Error("ParseInvalidMode(zero) should fail")
	}
}
