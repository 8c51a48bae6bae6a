package reconcile

import (
	"math/rand"
	"testing"

	"scene-sync/core/element"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// el builds a rectangle header-only element for tests.
func el(id string, version, nonce int64) element.Element {
	e := element.New(element.KindRectangle, id)
	e.Version = version
	e.VersionNonce = nonce
	return e
}

func ids(scene element.Scene) []string {
	out := make([]string, 0, len(scene))
	for _, e := range scene {
		out = append(out, e.ID)
	}
	return out
}

// TestReconcile_UnionKeys tests that ids from both sides all end up in the result.
func TestReconcile_UnionKeys(t *testing.T) {
	local := element.Scene{el("A", 1, 0), el("B", 1, 0)}
	remote := element.Scene{el("B", 1, 0), el("C", 1, 0)}

	merged, summary := Merge(local, remote)
	assert.Equal(t, []string{"A", "B", "C"}, ids(merged))
	assert.Equal(t, 3, summary.TotalElements)
	assert.Equal(t, 1, summary.LocalOnly)
	assert.Equal(t, 1, summary.RemoteOnly)
	assert.Equal(t, 1, summary.LocalWins)
	assert.Equal(t, 0, summary.RemoteWins)
}

// TestReconcile_Ordering tests that local order is kept and remote-only ids are appended in remote order.
func TestReconcile_Ordering(t *testing.T) {
	local := element.Scene{el("C", 1, 0), el("A", 1, 0)}
	remote := element.Scene{el("Z", 1, 0), el("A", 5, 0), el("Y", 1, 0), el("C", 1, 0)}

	merged := Reconcile(local, remote)
	assert.Equal(t, []string{"C", "A", "Z", "Y"}, ids(merged))

	a, ok := merged.Get("A")
	require.True(t, ok)
	assert.Equal(t, int64(5), a.Version)
}

// TestReconcile_HigherVersionWins tests version precedence in both argument orders.
func TestReconcile_HigherVersionWins(t *testing.T) {
	newer := el("A", 3, 1)
	older := el("A", 2, 999)

	for name, args := range map[string][2]element.Scene{
		"LocalNewer":  {{newer}, {older}},
		"RemoteNewer": {{older}, {newer}},
	} {
		t.Run(name, func(t *testing.T) {
			merged := Reconcile(args[0], args[1])
			require.Len(t, merged, 1)
			assert.Equal(t, int64(3), merged[0].Version)
			assert.Equal(t, int64(1), merged[0].VersionNonce)
		})
	}
}

// TestReconcile_NonceTieBreak tests that equal versions resolve on the higher nonce.
func TestReconcile_NonceTieBreak(t *testing.T) {
	low := el("A", 2, 10)
	high := el("A", 2, 20)

	assert.Equal(t, int64(20), Reconcile(element.Scene{low}, element.Scene{high})[0].VersionNonce)
	assert.Equal(t, int64(20), Reconcile(element.Scene{high}, element.Scene{low})[0].VersionNonce)
}

// TestReconcile_Tombstones tests that a winning deletion stays in the result.
func TestReconcile_Tombstones(t *testing.T) {
	deleted := el("A", 4, 0)
	deleted.IsDeleted = true
	alive := el("A", 3, 0)

	merged, summary := Merge(element.Scene{alive, el("B", 1, 0)}, element.Scene{deleted})
	require.Len(t, merged, 2)
	assert.True(t, merged[0].IsDeleted)
	assert.Equal(t, "A", merged[0].ID)
	assert.Equal(t, 1, summary.Tombstones)
	assert.Equal(t, 1, summary.RemoteWins)

	// A losing deletion is discarded.
	older := el("A", 2, 0)
	older.IsDeleted = true
	merged = Reconcile(element.Scene{older}, element.Scene{alive})
	assert.False(t, merged[0].IsDeleted)
}

// TestReconcile_FullTie tests the fallbacks when version and nonce are equal.
func TestReconcile_FullTie(t *testing.T) {
	a := el("A", 1, 1)
	b := el("A", 1, 1)
	b.IsDeleted = true
	assert.True(t, Reconcile(element.Scene{a}, element.Scene{b})[0].IsDeleted)
	assert.True(t, Reconcile(element.Scene{b}, element.Scene{a})[0].IsDeleted)

	c := el("A", 1, 1)
	c.Updated = 100
	d := el("A", 1, 1)
	d.Updated = 200
	assert.Equal(t, int64(200), Reconcile(element.Scene{c}, element.Scene{d})[0].Updated)
	assert.Equal(t, int64(200), Reconcile(element.Scene{d}, element.Scene{c})[0].Updated)
}

// TestReconcile_LocalEditAppended tests the save path example: local wins on A, B is kept.
func TestReconcile_LocalEditAppended(t *testing.T) {
	remote := element.Scene{el("A", 1, 0)}
	local := element.Scene{el("A", 2, 0), el("B", 1, 0)}

	merged := Reconcile(local, remote)
	assert.Equal(t, []string{"A", "B"}, ids(merged))
	assert.Equal(t, int64(2), merged[0].Version)
	assert.Equal(t, int64(1), merged[1].Version)
}

// TestReconcile_EmptyInputs tests nil and empty scenes.
func TestReconcile_EmptyInputs(t *testing.T) {
	assert.Empty(t, Reconcile(nil, nil))
	assert.Equal(t, []string{"A"}, ids(Reconcile(nil, element.Scene{el("A", 1, 0)})))
	assert.Equal(t, []string{"A"}, ids(Reconcile(element.Scene{el("A", 1, 0)}, nil)))
}

// TestReconcile_DuplicateIDs tests that duplicates inside one side collapse to their winner.
func TestReconcile_DuplicateIDs(t *testing.T) {
	local := element.Scene{el("A", 1, 0), el("A", 3, 0)}
	merged := Reconcile(local, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, int64(3), merged[0].Version)
}

func randomScene(r *rand.Rand, pool []string) element.Scene {
	var scene element.Scene
	for _, id := range r.Perm(len(pool)) {
		if r.Intn(3) == 0 {
			continue
		}
		e := el(pool[id], int64(r.Intn(4)+1), int64(r.Intn(3)))
		e.IsDeleted = r.Intn(5) == 0
		scene = append(scene, e)
	}
	return scene
}

// TestReconcile_Properties checks idempotence, determinism and order-independent winners over random scenes.
func TestReconcile_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	pool := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	for i := 0; i < 500; i++ {
		a := randomScene(r, pool)
		b := randomScene(r, pool)

		ab := Reconcile(a, b)
		assert.Equal(t, ab, Reconcile(ab, b), "idempotent")
		assert.Equal(t, ab, Reconcile(a, b), "deterministic")

		ba := Reconcile(b, a)
		require.Len(t, ba, len(ab))
		for _, x := range ab {
			y, ok := ba.Get(x.ID)
			require.True(t, ok)
			assert.Equal(t, x.Header, y.Header, "winner for %s depends on argument order", x.ID)
		}

		assert.NoError(t, ab.Validate())
	}
}

func TestWins(t *testing.T) {
	base := element.Header{ID: "A", Version: 2, VersionNonce: 5}

	tests := []struct {
		name  string
		other element.Header
		want  bool
	}{
		{"HigherVersion", element.Header{ID: "A", Version: 3}, true},
		{"LowerVersion", element.Header{ID: "A", Version: 1, VersionNonce: 100}, false},
		{"HigherNonce", element.Header{ID: "A", Version: 2, VersionNonce: 6}, true},
		{"LowerNonce", element.Header{ID: "A", Version: 2, VersionNonce: 4}, false},
		{"Identical", base, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wins(tt.other, base))
		})
	}
}
