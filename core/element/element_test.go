package element_test

import (
	"encoding/json"
	"testing"

	"scene-sync/core/element"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneJSON = `[
  {"id":"rect-1","type":"rectangle","x":10,"y":20,"width":100,"height":50,"angle":0,
   "strokeColor":"#1e1e1e","backgroundColor":"transparent","fillStyle":"solid",
   "strokeWidth":2,"strokeStyle":"solid","roughness":1,"opacity":100,"groupIds":[],
   "frameId":null,"index":"a0","roundness":{"type":3},"seed":1234,"version":3,
   "versionNonce":99,"isDeleted":false,"boundElements":null,"updated":1700000000000,
   "link":null,"locked":false},
  {"id":"arrow-1","type":"arrow","x":0,"y":0,"width":50,"height":0,"version":2,
   "versionNonce":7,"isDeleted":false,"updated":1700000000001,
   "points":[[0,0],[50,0]],"startBinding":{"elementId":"rect-1","focus":0.1,"gap":4},
   "endBinding":null,"startArrowhead":null,"endArrowhead":"arrow","elbowed":false},
  {"id":"text-1","type":"text","version":1,"versionNonce":1,"isDeleted":true,
   "updated":1700000000002,"text":"hello","originalText":"hello","fontSize":20,
   "fontFamily":5,"textAlign":"left","verticalAlign":"top","containerId":null,
   "lineHeight":1.25,"autoResize":true},
  {"id":"img-1","type":"image","version":4,"versionNonce":2,"isDeleted":false,
   "updated":1700000000003,"fileId":"file-abc","status":"saved","scale":[1,1]},
  {"id":"pen-1","type":"freedraw","version":1,"versionNonce":3,"isDeleted":false,
   "updated":1700000000004,"points":[[0,0],[1,2]],"pressures":[0.5,0.6],
   "simulatePressure":false},
  {"id":"frame-1","type":"frame","version":1,"versionNonce":4,"isDeleted":false,
   "updated":1700000000005,"name":"Frame 1"}
]`

func TestDecode(t *testing.T) {
	scene, err := element.Decode([]byte(sceneJSON))
	require.NoError(t, err)
	require.Len(t, scene, 6)

	t.Run("Header", func(t *testing.T) {
		rect := scene[0]
		assert.Equal(t, "rect-1", rect.ID)
		assert.Equal(t, element.KindRectangle, rect.Type)
		assert.Equal(t, int64(3), rect.Version)
		assert.Equal(t, int64(99), rect.VersionNonce)
		assert.Equal(t, int64(1700000000000), rect.Updated)
		assert.Equal(t, 100.0, rect.Width)
		assert.IsType(t, &element.Rectangle{}, rect.Props)
	})

	t.Run("Arrow", func(t *testing.T) {
		arrow, ok := scene[1].Props.(*element.Arrow)
		require.True(t, ok)
		assert.Len(t, arrow.Points, 2)
		require.NotNil(t, arrow.StartBinding)
		assert.Equal(t, "rect-1", arrow.StartBinding.ElementID)
		require.NotNil(t, arrow.EndArrowhead)
		assert.Equal(t, "arrow", *arrow.EndArrowhead)
	})

	t.Run("Text", func(t *testing.T) {
		text, ok := scene[2].Props.(*element.Text)
		require.True(t, ok)
		assert.Equal(t, "hello", text.Text)
		assert.True(t, scene[2].IsDeleted)
	})

	t.Run("Image", func(t *testing.T) {
		img, ok := scene[3].Props.(*element.Image)
		require.True(t, ok)
		require.NotNil(t, img.FileID)
		assert.Equal(t, "file-abc", *img.FileID)
	})
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"UnknownType", `[{"id":"a","type":"hexagon","version":1}]`},
		{"MissingType", `[{"id":"a","version":1}]`},
		{"MissingID", `[{"type":"rectangle","version":1}]`},
		{"NegativeVersion", `[{"id":"a","type":"rectangle","version":-1}]`},
		{"BadPayload", `[{"id":"a","type":"text","version":1,"text":42}]`},
		{"DuplicateID", `[{"id":"a","type":"rectangle","version":1},{"id":"a","type":"ellipse","version":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := element.Decode([]byte(tt.json))
			assert.ErrorIs(t, err, element.ErrInvalidElement)
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	scene, err := element.Decode([]byte(sceneJSON))
	require.NoError(t, err)

	data, err := scene.Encode()
	require.NoError(t, err)

	again, err := element.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, scene, again)

	// Payload fields stay flat next to the header.
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "file-abc", raw[3]["fileId"])
	assert.Equal(t, "img-1", raw[3]["id"])
	_, nested := raw[3]["Props"]
	assert.False(t, nested)
}

func TestEncode_NilScene(t *testing.T) {
	data, err := element.Scene(nil).Encode()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestMarshal_MismatchedPayload(t *testing.T) {
	el := element.New(element.KindRectangle, "a")
	el.Props = &element.Text{}

	_, err := json.Marshal(el)
	assert.ErrorIs(t, err, element.ErrInvalidElement)
}

func TestScene_Version(t *testing.T) {
	scene, err := element.Decode([]byte(sceneJSON))
	require.NoError(t, err)

	// 3 + 2 + 1 + 4 + 1 + 1, tombstone included
	assert.Equal(t, int64(12), scene.Version())
	assert.Equal(t, int64(0), element.Scene{}.Version())
}

func TestScene_Visible(t *testing.T) {
	scene, err := element.Decode([]byte(sceneJSON))
	require.NoError(t, err)

	visible := scene.Visible()
	assert.Len(t, visible, 5)
	_, ok := visible.Get("text-1")
	assert.False(t, ok)
}

func TestScene_FileIDs(t *testing.T) {
	fileA, fileB := "file-a", "file-b"

	imgA := element.New(element.KindImage, "i1")
	imgA.Props.(*element.Image).FileID = &fileA
	imgDup := element.New(element.KindImage, "i2")
	imgDup.Props.(*element.Image).FileID = &fileA
	imgDeleted := element.New(element.KindImage, "i3")
	imgDeleted.Props.(*element.Image).FileID = &fileB
	imgDeleted.IsDeleted = true
	imgPending := element.New(element.KindImage, "i4")

	scene := element.Scene{imgA, element.New(element.KindRectangle, "r"), imgDup, imgDeleted, imgPending}
	assert.Equal(t, []string{"file-a"}, scene.FileIDs())
}

func TestKind_IsValid(t *testing.T) {
	for _, k := range element.Kinds {
		assert.True(t, k.IsValid(), k)
	}
	assert.False(t, element.Kind("selection").IsValid())
	assert.False(t, element.Kind("").IsValid())
}

func TestEncode_KeepsUnmodelledMembers(t *testing.T) {
	const input = `[
  {"id":"img-1","type":"image","version":2,"versionNonce":1,"isDeleted":false,"updated":1,
   "fileId":"file-abc","status":"saved","scale":[1,1],
   "crop":{"x":0,"y":0,"width":10,"height":10,"naturalWidth":20,"naturalHeight":20}},
  {"id":"arrow-1","type":"arrow","version":3,"versionNonce":2,"isDeleted":false,"updated":2,
   "points":[[0,0],[10,10]],"elbowed":true,
   "startBinding":{"elementId":"img-1","focus":0,"gap":1,"fixedPoint":[0.5,1]},
   "endBinding":null,"startArrowhead":null,"endArrowhead":"arrow",
   "fixedSegments":[{"start":[0,5],"end":[10,5],"index":1}],
   "startIsSpecial":false,"endIsSpecial":true}
]`

	scene, err := element.Decode([]byte(input))
	require.NoError(t, err)

	data, err := scene.Encode()
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	crop, ok := raw[0]["crop"].(map[string]any)
	require.True(t, ok, "crop must survive a decode/encode cycle")
	assert.Equal(t, float64(20), crop["naturalWidth"])

	binding, ok := raw[1]["startBinding"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{0.5, float64(1)}, binding["fixedPoint"])
	assert.Equal(t, "img-1", binding["elementId"])
	assert.NotNil(t, raw[1]["fixedSegments"])
	assert.Equal(t, true, raw[1]["endIsSpecial"])
	assert.Equal(t, false, raw[1]["startIsSpecial"])

	again, err := element.Decode(data)
	require.NoError(t, err)
	reencoded, err := again.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(reencoded))
}

func TestEncode_ModelledFieldWinsOverCarriedMember(t *testing.T) {
	scene, err := element.Decode([]byte(`[{"id":"r","type":"rectangle","version":1,"customData":{}}]`))
	require.NoError(t, err)

	scene[0].CustomData = map[string]any{"owner": "a"}
	data, err := scene.Encode()
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]any{"owner": "a"}, raw[0]["customData"])
}
