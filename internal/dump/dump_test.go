package dump

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/samcharles93/gff/pkg/gff"
)

func sampleDoc(t *testing.T) *gff.Document {
	t.Helper()
	doc := gff.New("UTC ")
	r := doc.Root
	must(t, r.SetResRef("TemplateResRef", "nw_bandit"))
	must(t, r.SetInt32("Str", 14))
	ls := gff.NewLocString()
	ls.StringRef = 100
	ls.Set(gff.LanguageEnglish, gff.GenderMale, "Bandit")
	must(t, r.SetLocString("FirstName", ls))
	must(t, r.SetBinary("Blob", []byte{1, 2, 3}))
	must(t, r.SetVector3("Position", gff.Vector3{X: 1, Y: 2.5, Z: -3}))

	items := gff.NewList()
	item := items.Append(gff.NewStruct(0))
	must(t, item.SetUInt16("Repos_PosX", 2))
	must(t, r.SetList("ItemList", items))

	inner := gff.NewStruct(7)
	must(t, inner.SetDouble("Weight", 1.5))
	must(t, r.SetStruct("Stats", inner))
	return doc
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("set: %v", err)
	}
}

func TestFromDocumentOrder(t *testing.T) {
	t.Parallel()

	m := FromDocument(sampleDoc(t))
	if m.Type != "UTC" || m.Version != gff.DefaultVersion {
		t.Fatalf("header: got %q %q", m.Type, m.Version)
	}
	var labels []string
	for _, f := range m.Root.Fields {
		labels = append(labels, f.Label)
	}
	want := []string{"TemplateResRef", "Str", "FirstName", "Blob", "Position", "ItemList", "Stats"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("field order (-want +got):\n%s", diff)
	}
	if m.Root.Fields[6].Struct == nil || m.Root.Fields[6].Struct.ID != 7 {
		t.Fatalf("nested struct not mirrored: %+v", m.Root.Fields[6])
	}
	if len(m.Root.Fields[5].List) != 1 {
		t.Fatalf("list not mirrored: %+v", m.Root.Fields[5])
	}
}

func TestJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := JSON(&buf, sampleDoc(t), ""); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("compact output spans lines: %q", buf.String())
	}

	var got struct {
		Type string `json:"type"`
		Root struct {
			ID     int32 `json:"id"`
			Fields []struct {
				Label string          `json:"label"`
				Type  string          `json:"type"`
				Value json.RawMessage `json:"value"`
			} `json:"fields"`
		} `json:"root"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got.Type != "UTC" || got.Root.ID != gff.GenericStructID {
		t.Fatalf("unexpected header: %+v", got)
	}
	if string(got.Root.Fields[0].Value) != `"nw_bandit"` {
		t.Fatalf("resref: got %s", got.Root.Fields[0].Value)
	}
	if !strings.Contains(string(got.Root.Fields[2].Value), `"text":"Bandit"`) {
		t.Fatalf("locstring: got %s", got.Root.Fields[2].Value)
	}
	if string(got.Root.Fields[4].Value) != "[1,2.5,-3]" {
		t.Fatalf("vector: got %s", got.Root.Fields[4].Value)
	}
}

func TestJSONIndent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := JSON(&buf, sampleDoc(t), "  "); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"root\": {") {
		t.Fatalf("indent not applied:\n%s", buf.String())
	}
}

func TestJSONNonFinite(t *testing.T) {
	t.Parallel()

	doc := gff.New("GIT ")
	must(t, doc.Root.SetSingle("Bad", float32(math.NaN())))
	must(t, doc.Root.SetDouble("Far", math.Inf(1)))
	out, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `"NaN"`) || !strings.Contains(string(out), `"+Inf"`) {
		t.Fatalf("non-finite floats not spelled out: %s", out)
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Text(&buf, sampleDoc(t)); err != nil {
		t.Fatalf("Text: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"UTC V3.2\n",
		"struct id=-1 fields=7\n",
		"  Str Int32 = 14\n",
		`  FirstName LocString = ref=100 english/male:"Bandit"`,
		"  Blob Binary = <3 bytes> 01 02 03\n",
		"  ItemList List len=1\n",
		"    [0] struct id=0 fields=1\n",
		"      Repos_PosX UInt16 = 2\n",
		"  Stats Struct id=7 fields=1\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestDiff(t *testing.T) {
	t.Parallel()

	a, b := sampleDoc(t), sampleDoc(t)
	if d := Diff(a, b); d != "" {
		t.Fatalf("equal documents differ:\n%s", d)
	}
	must(t, b.Root.GetList("ItemList").At(0).SetUInt16("Repos_PosX", 9))
	d := Diff(a, b)
	if d == "" {
		t.Fatalf("nested change not reported")
	}
	if !strings.Contains(d, "Value") {
		t.Fatalf("diff does not name the changed values:\n%s", d)
	}
}
