package renders

import (
	"errors"
	"testing"

	"github.com/reusee/taideck/deckjs"
)

func TestCacheSwapOnSuccess(t *testing.T) {
	cache := NewCache()

	unit1, err := deckjs.Compile("card", `function entry() { return Element('div', null, 'v1'); }`)
	if err != nil {
		t.Fatal(err)
	}
	cache.StoreGood("card", "src-v1", unit1)

	out, ok := cache.Get("card")
	if !ok {
		t.Fatal("expected entry")
	}
	if out.Current != unit1 || out.LastGood != unit1 {
		t.Fatal("expected both slots to hold the new unit")
	}
	if out.Err != nil {
		t.Fatal("expected no error")
	}
	if out.Source != "src-v1" {
		t.Fatalf("got %q", out.Source)
	}

	unit2, err := deckjs.Compile("card", `function entry() { return Element('div', null, 'v2'); }`)
	if err != nil {
		t.Fatal(err)
	}
	cache.StoreGood("card", "src-v2", unit2)

	out, _ = cache.Get("card")
	if out.Current != unit2 || out.LastGood != unit2 {
		t.Fatal("expected swap to the newer unit")
	}
}

func TestCacheKeepsLastGoodOnFailure(t *testing.T) {
	cache := NewCache()

	unit, err := deckjs.Compile("card", `function entry() { return Element('div', null, 'ok'); }`)
	if err != nil {
		t.Fatal(err)
	}
	cache.StoreGood("card", "good-src", unit)

	compileErr := errors.New("unexpected token")
	cache.StoreFailed("card", "broken-src", compileErr)

	out, ok := cache.Get("card")
	if !ok {
		t.Fatal("expected entry to survive the failure")
	}
	if out.Current != nil {
		t.Fatal("expected no current unit")
	}
	if out.Err != compileErr {
		t.Fatalf("got %v", out.Err)
	}
	if out.LastGood != unit {
		t.Fatal("expected last good unit to stay")
	}
	if out.Source != "broken-src" {
		t.Fatalf("got %q", out.Source)
	}
}

func TestCacheFailureBeforeAnySuccess(t *testing.T) {
	cache := NewCache()
	cache.StoreFailed("fresh", "bad", errors.New("nope"))

	out, ok := cache.Get("fresh")
	if !ok {
		t.Fatal("expected entry recording the failure")
	}
	if out.LastGood != nil {
		t.Fatal("expected no good unit yet")
	}
}

func TestCacheMiss(t *testing.T) {
	cache := NewCache()
	if _, ok := cache.Get("absent"); ok {
		t.Fatal("expected miss")
	}
	if cache.Len() != 0 {
		t.Fatalf("got %d", cache.Len())
	}
}

func TestCacheIDs(t *testing.T) {
	cache := NewCache()
	cache.StoreFailed("zebra", "z", errors.New("z"))
	cache.StoreFailed("alpha", "a", errors.New("a"))
	ids := cache.IDs()
	if len(ids) != 2 || ids[0] != "alpha" || ids[1] != "zebra" {
		t.Fatalf("got %v", ids)
	}
}
