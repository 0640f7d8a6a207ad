package extractor

import "testing"

func TestLayoutFingerprint_IgnoresText(t *testing.T) {
	a := `<html><body><div class="x"><p>Volume internet disponible : 10 Mo</p></div></body></html>`
	b := `<html><body><div class="y"><p>Volume internet disponible : 9999 Mo</p></div></body></html>`

	if LayoutFingerprint(a) != LayoutFingerprint(b) {
		t.Errorf("same layout produced different fingerprints: %s vs %s",
			FormatFingerprint(LayoutFingerprint(a)), FormatFingerprint(LayoutFingerprint(b)))
	}
}

func TestLayoutFingerprint_DifferentLayouts(t *testing.T) {
	a := `<html><body><div><p>a</p></div></body></html>`
	b := `<html><body><table><tr><td>a</td><td>b</td></tr></table><ul><li>x</li><li>y</li></ul><form><input><button></button></form></body></html>`

	if d := LayoutDistance(LayoutFingerprint(a), LayoutFingerprint(b)); d == 0 {
		t.Error("different layouts should not share a fingerprint")
	}
}

func TestLayoutFingerprint_Empty(t *testing.T) {
	if fp := LayoutFingerprint(""); fp != 0 {
		t.Errorf("empty markup should fingerprint to 0, got %016x", fp)
	}
}

func TestFormatFingerprint(t *testing.T) {
	if got := FormatFingerprint(0xabc); got != "0000000000000abc" {
		t.Errorf("FormatFingerprint = %q", got)
	}
}

func TestLayoutFingerprint_Nesting(t *testing.T) {
	nested := `<div><p><span>a</span></p></div>`
	flat := `<div></div><p></p><span>a</span>`

	if LayoutFingerprint(nested) == LayoutFingerprint(flat) {
		t.Error("same tags at different depths should not share a fingerprint")
	}
}

func TestLayoutFingerprint_VoidTagsDoNotNest(t *testing.T) {
	a := `<form><input><input><button></button></form>`
	b := `<form><input/><input/><button></button></form>`

	if LayoutFingerprint(a) != LayoutFingerprint(b) {
		t.Error("void and self-closing inputs should fingerprint alike")
	}
}

func TestShingleKey(t *testing.T) {
	run := []node{{"div", 0}, {"p", 1}, {"p", 1}, {"ul", 0}}
	if got := shingleKey(run); got != "div>p=p<1ul" {
		t.Errorf("shingleKey = %q", got)
	}
}
