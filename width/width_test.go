package width

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/widthpoints/cascade"
	"github.com/npillmayer/widthpoints/css"
	"github.com/npillmayer/widthpoints/maybe"
)

func fold(t *testing.T, decls ...cascade.Declaration) cascade.Table {
	tbl, err := cascade.Fold(decls)
	if err != nil {
		t.Fatalf("cannot fold declarations: %v", err)
	}
	return tbl
}

func scoped(d cascade.Declaration, iv cascade.Interval) cascade.Declaration {
	d.Interval = maybe.Just(iv)
	return d
}

func collapse(t *testing.T, decls ...cascade.Declaration) Function {
	tbl := fold(t, decls...)
	fs := ResolveFontSizes(tbl, maybe.Nothing[FontSizes](), 16)
	return Collapse(ResolveUnits(tbl, fs, 16))
}

func TestCollapseMinBeatsMax(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "widthpoints.width")
	defer teardown()
	//
	f := collapse(t, cascade.Declaration{
		Min:   maybe.Just(css.Px(200)),
		Width: maybe.Just(css.Px(100)),
	})
	if s := f.String(); s != "{0: 200px}" {
		t.Errorf("expected min-width to win, effective width = %s", s)
	}
	f = collapse(t, cascade.Declaration{
		Min: maybe.Just(css.Px(200)),
		Max: maybe.Just(css.Px(100)),
	})
	if s := f.String(); s != "{0: 200px}" {
		t.Errorf("expected min-width to win over max-width, effective width = %s", s)
	}
}

func TestCollapseMaxWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "widthpoints.width")
	defer teardown()
	//
	for i, x := range []struct {
		decls    []cascade.Declaration
		expected string
	}{
		{[]cascade.Declaration{{Max: maybe.Just(css.Px(100))}}, "{0: 100px}"},
		{[]cascade.Declaration{{Max: maybe.Just(css.Px(100)), Width: maybe.Just(css.Px(200))}}, "{0: 100px}"},
		{[]cascade.Declaration{{Max: maybe.Just(css.Px(100))}, {Width: maybe.Just(css.Px(200))}}, "{0: 100px}"},
		{[]cascade.Declaration{{Min: maybe.Just(css.Px(200))}, {Width: maybe.Just(css.Px(100))}}, "{0: 200px}"},
		{[]cascade.Declaration{{Width: maybe.Just(css.Px(100))}, {Width: maybe.Just(css.Auto())}}, "{0: auto}"},
		{[]cascade.Declaration{
			{Max: maybe.Just(css.Px(200))},
			scoped(cascade.Declaration{Width: maybe.Just(css.Px(300))}, cascade.Between(100, 1000)),
		}, "{0: 200px, 100: 200px, 1000: 200px}"},
		{[]cascade.Declaration{
			{Width: maybe.Just(css.Px(300))},
			scoped(cascade.Declaration{Max: maybe.Just(css.Px(200))}, cascade.Between(100, 1000)),
		}, "{0: 300px, 100: 200px, 1000: 300px}"},
		{[]cascade.Declaration{
			{Width: maybe.Just(css.Px(300))},
			scoped(cascade.Declaration{Max: maybe.Just(css.Px(200))}, cascade.Between(100, 300)),
			scoped(cascade.Declaration{Width: maybe.Just(css.Px(50))}, cascade.Between(200, 250)),
		}, "{0: 300px, 100: 200px, 200: 50px, 250: 200px, 300: 300px}"},
		{[]cascade.Declaration{
			{Width: maybe.Just(css.Percentage(50)), Max: maybe.Just(css.Px(300))},
		}, "{0: 300px}"},
		{nil, "{}"},
	} {
		if s := collapse(t, x.decls...).String(); s != x.expected {
			t.Errorf("%d: expected effective width %s, is %s", i, x.expected, s)
		}
	}
}

func TestFontSizeInheritance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "widthpoints.width")
	defer teardown()
	//
	root := fold(t, cascade.Declaration{FontSize: maybe.Just(css.Px(20))},
		scoped(cascade.Declaration{FontSize: maybe.Just(css.Px(10))}, cascade.UpTo(500)))
	rootFS := ResolveFontSizes(root, maybe.Nothing[FontSizes](), 16)
	if s := rootFS.String(); s != "{0: 10, 500: 20}" {
		t.Errorf("unexpected root font sizes %s", s)
	}
	// no font-size declared => inherit
	mid := fold(t, cascade.Declaration{Width: maybe.Just(css.Px(100))})
	midFS := ResolveFontSizes(mid, maybe.Just(rootFS), 16)
	if s := midFS.String(); s != "{0: 10, 500: 20}" {
		t.Errorf("expected inherited font sizes, are %s", s)
	}
	// em font-size is relative to the parent
	leaf := fold(t, cascade.Declaration{FontSize: maybe.Just(css.Em(2)), Width: maybe.Just(css.Em(10))})
	leafFS := ResolveFontSizes(leaf, maybe.Just(midFS), 16)
	if s := leafFS.String(); s != "{0: 20, 500: 40}" {
		t.Errorf("expected em font size relative to parent, is %s", s)
	}
	// em widths are relative to the node's own font size
	f := Collapse(ResolveUnits(leaf, leafFS, 16))
	if s := f.String(); s != "{0: 200px, 500: 400px}" {
		t.Errorf("expected em widths relative to own font size, are %s", s)
	}
	// rem ignores the chain
	remNode := fold(t, cascade.Declaration{FontSize: maybe.Just(css.Rem(1.5)), Width: maybe.Just(css.Rem(10))})
	remFS := ResolveFontSizes(remNode, maybe.Just(midFS), 16)
	if s := Collapse(ResolveUnits(remNode, remFS, 16)).String(); s != "{0: 160px}" {
		t.Errorf("expected rem width relative to base, is %s", s)
	}
	if v, _ := remFS.At(800); v != 24 {
		t.Errorf("expected rem font size 24, is %v", v)
	}
}

func TestFontSizeWithoutDeclarations(t *testing.T) {
	fs := ResolveFontSizes(cascade.Table{}, maybe.Nothing[FontSizes](), 16)
	if v, ok := fs.At(0); !ok || v != 16 {
		t.Errorf("expected root base font size, is %v", fs)
	}
	if r := ResolveUnits(cascade.Table{}, fs, 16); !r.IsEmpty() {
		t.Errorf("expected no width constraints for an empty table, are %v", r)
	}
}

func TestComposeChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "widthpoints.width")
	defer teardown()
	//
	container := FunctionOf(Point{0, Px(200)})
	child := FunctionOf(Point{0, Px(300)})
	f, err := Compose(child, container)
	if err != nil {
		t.Fatal(err)
	}
	if s := f.String(); s != "{0: 200px}" {
		t.Errorf("expected container to restrict child, is %s", s)
	}
	// one side unconstrained
	f, _ = Compose(Function{}, container)
	if s := f.String(); s != "{0: 200px}" {
		t.Errorf("expected unconstrained child to take container width, is %s", s)
	}
	f, _ = Compose(FunctionOf(Point{0, Unconstrained()}, Point{100, Px(50)}), Function{})
	if s := f.String(); s != "{0: auto, 100: 50px}" {
		t.Errorf("expected child width in unconstrained container, is %s", s)
	}
	// key union with step lookup
	own := FunctionOf(Point{0, Px(300)}, Point{100, Px(100)})
	cont := FunctionOf(Point{0, Px(1000)}, Point{50, Px(200)}, Point{150, Px(50)})
	f, _ = Compose(own, cont)
	if s := f.String(); s != "{0: 300px, 50: 200px, 100: 100px, 150: 50px}" {
		t.Errorf("unexpected composition %s", s)
	}
	// pairwise over a chain
	f, err = ComposeChain([]Function{cont, own, FunctionOf(Point{0, Px(120)})})
	if err != nil {
		t.Fatal(err)
	}
	if s := f.String(); s != "{0: 120px, 50: 120px, 100: 100px, 150: 50px}" {
		t.Errorf("unexpected chain composition %s", s)
	}
}

func TestComposePercentages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "widthpoints.width")
	defer teardown()
	//
	f, err := Compose(FunctionOf(Point{0, Percent(50)}), FunctionOf(Point{0, Px(400)}))
	if err != nil || f.String() != "{0: 200px}" {
		t.Errorf("expected 50%% of 400px to be 200px, is %s (err=%v)", f, err)
	}
	f, err = Compose(FunctionOf(Point{0, Percent(50)}), FunctionOf(Point{0, Percent(50)}))
	if err != nil || f.String() != "{0: 25%}" {
		t.Errorf("expected 50%% of 50%% to be 25%%, is %s (err=%v)", f, err)
	}
	_, err = ComposeChain([]Function{
		FunctionOf(Point{0, Percent(50)}),
		FunctionOf(Point{0, Percent(50)}),
		FunctionOf(Point{0, Percent(50)}),
	})
	if !errors.Is(err, ErrNestedPercentage) {
		t.Errorf("expected three levels of percentages to fail, err = %v", err)
	}
	f, _ = Compose(FunctionOf(Point{0, Px(80)}), FunctionOf(Point{0, Percent(50)}))
	if s := f.String(); s != "{0: 80px}" {
		t.Errorf("expected absolute width inside percentage container to stay, is %s", s)
	}
}

func TestContainmentLaw(t *testing.T) {
	own := FunctionOf(Point{0, Px(300)}, Point{75, Unconstrained()}, Point{120, Px(90)}, Point{400, Px(700)})
	cont := FunctionOf(Point{0, Px(100)}, Point{100, Px(500)}, Point{300, Unconstrained()}, Point{600, Px(10)})
	f, err := Compose(own, cont)
	if err != nil {
		t.Fatal(err)
	}
	for b := 0.0; b < 1000; b += 7 {
		final, _ := f.At(b).Px()
		if o, ok := own.At(b).Px(); ok && final > o {
			t.Errorf("at %v: final width %v exceeds own width %v", b, final, o)
		}
		if c, ok := cont.At(b).Px(); ok && final > c {
			t.Errorf("at %v: final width %v exceeds container width %v", b, final, c)
		}
	}
}

func TestFunctionLookup(t *testing.T) {
	f := FunctionOf(Point{100, Px(10)})
	if f.At(50).IsConstrained() {
		t.Error("expected width below first key to be unconstrained")
	}
	if x, ok := f.At(150).Px(); !ok || x != 10 {
		t.Errorf("expected step lookup to find 10px, is %v", f.At(150))
	}
	if !f.Equal(FunctionOf(Point{100, Px(10)})) || f.Equal(Function{}) {
		t.Error("function equality broken")
	}
	if s := f.Steps(); s.Len() != 1 {
		t.Errorf("expected 1 step, have %v", s)
	}
}
