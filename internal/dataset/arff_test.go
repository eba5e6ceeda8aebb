package dataset

import (
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

const autosSample = `% 1985 Auto Imports Database
%
@relation autos

@attribute make {alfa-romero, audi, bmw}
@attribute 'fuel-type' {diesel, gas}
@attribute width real
@attribute 'engine-size' numeric
@attribute symboling integer
@attribute price real

@data
alfa-romero,gas,64.1,130,3,13495
audi,gas,66.2,109,2,13950
% a comment inside data
bmw,diesel,66.4,136,2,17450

audi,gas,66.3,136,1,15250
`

func TestDecodeARFF(t *testing.T) {
	t.Parallel()
	schema, rows, err := DecodeARFF(strings.NewReader(autosSample))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if schema.Relation != "autos" {
		t.Errorf("relation, got: %q, expected: autos", schema.Relation)
	}
	if len(schema.Attributes) != 6 {
		t.Fatalf("attributes, got:\n%s", spew.Sdump(schema.Attributes))
	}
	expected := []struct {
		name string
		kind Kind
	}{
		{"make", KindCategorical},
		{"fuel-type", KindCategorical},
		{"width", KindReal},
		{"engine-size", KindReal},
		{"symboling", KindReal},
		{"price", KindReal},
	}
	for i, e := range expected {
		if a := schema.Attributes[i]; a.Name != e.name || a.Kind != e.kind {
			t.Errorf("attribute %d, got: %s %s, expected: %s %s", i, a.Name, a.Kind, e.name, e.kind)
		}
	}
	if v := schema.Attributes[0].Values; len(v) != 3 || v[2] != "bmw" {
		t.Errorf("nominal values, got: %v", v)
	}
	if len(rows) != 4 {
		t.Fatalf("rows, got: %d, expected: 4", len(rows))
	}
	if rows[2][0] != "bmw" || rows[2][5] != "17450" {
		t.Errorf("row content, got: %v", rows[2])
	}
}

func TestDecodeARFFErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		doc  string
	}{
		{name: "no_data", doc: "@relation x\n@attribute a real\n"},
		{name: "data_before_attributes", doc: "@relation x\n@data\n1\n"},
		{name: "bad_row", doc: "@relation x\n@attribute a real\n@attribute b real\n@data\n1,2\n3\n"},
		{name: "bad_type", doc: "@relation x\n@attribute a date\n@data\n"},
		{name: "unterminated_set", doc: "@relation x\n@attribute a {x, y\n@data\n"},
		{name: "unknown_keyword", doc: "@relation x\n@foo bar\n"},
		{name: "unterminated_quote", doc: "@relation x\n@attribute a real\n@attribute c {p, q}\n@data\n1,'p\n"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := DecodeARFF(strings.NewReader(test.doc)); !errors.Is(err, ErrMalformed) {
				t.Errorf("decode, got: %v, expected: %v", err, ErrMalformed)
			}
		})
	}
}

func TestSchemaExtract(t *testing.T) {
	t.Parallel()
	schema, rows, err := DecodeARFF(strings.NewReader(autosSample))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	points, labels, err := schema.Extract(rows, "price", []string{"symboling", "fuel-type"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if labels != nil {
		t.Errorf("real target has no declared labels, got: %v", labels)
	}
	if len(points) != 4 {
		t.Fatalf("points, got: %d, expected: 4", len(points))
	}
	p := points[0]
	if p.Target != "13495" || len(p.Real) != 2 || p.Real[0] != 64.1 || p.Real[1] != 130 {
		t.Errorf("real features, got:\n%s", spew.Sdump(p))
	}
	if len(p.Categorical) != 1 || p.Categorical[0] != "alfa-romero" {
		t.Errorf("categorical features, got: %v", p.Categorical)
	}

	_, labels, err = schema.Extract(rows, "make", nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(labels) != 3 || labels[0] != "alfa-romero" {
		t.Errorf("nominal target labels, got: %v", labels)
	}
}

func TestSchemaExtractErrors(t *testing.T) {
	t.Parallel()
	schema, rows, err := DecodeARFF(strings.NewReader(autosSample))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	tests := []struct {
		name        string
		rows        [][]string
		target      string
		ignored     []string
		expectedErr error
	}{
		{name: "unknown_target", rows: rows, target: "colour", expectedErr: ErrUnknownAttribute},
		{name: "unknown_ignored", rows: rows, target: "price", ignored: []string{"colour"}, expectedErr: ErrUnknownAttribute},
		{name: "ignored_target", rows: rows, target: "price", ignored: []string{"price"}, expectedErr: ErrConfiguration},
		{
			name:        "missing_value",
			rows:        [][]string{{"audi", "gas", "?", "109", "2", "13950"}},
			target:      "price",
			expectedErr: ErrMalformed,
		},
		{
			name:        "nan_value",
			rows:        [][]string{{"audi", "gas", "NaN", "109", "2", "13950"}},
			target:      "price",
			expectedErr: ErrMalformed,
		},
		{
			name:        "infinite_value",
			rows:        [][]string{{"audi", "gas", "66.2", "+Inf", "2", "13950"}},
			target:      "price",
			expectedErr: ErrMalformed,
		},
		{
			name:        "short_row",
			rows:        [][]string{{"audi", "gas"}},
			target:      "price",
			expectedErr: ErrMalformed,
		},
	}
	for _, test := range tests {
		if _, _, err := schema.Extract(test.rows, test.target, test.ignored); !errors.Is(err, test.expectedErr) {
			t.Errorf("%s: extract, got: %v, expected: %v", test.name, err, test.expectedErr)
		}
	}
}

func TestDecodeARFFQuotedCommas(t *testing.T) {
	t.Parallel()
	doc := `@relation quoted
@attribute name string
@attribute x numeric
@attribute class {'a,b', "c", d}
@data
'Smith, J',0.5,'a,b'
"Doe, A",1,c
O'Neil,2,d
`
	schema, rows, err := DecodeARFF(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if values := schema.Attributes[2].Values; len(values) != 3 || values[0] != "a,b" || values[1] != "c" || values[2] != "d" {
		t.Errorf("class values, got: %q, expected: [a,b c d]", values)
	}
	expected := [][]string{
		{"Smith, J", "0.5", "a,b"},
		{"Doe, A", "1", "c"},
		{"O'Neil", "2", "d"},
	}
	if len(rows) != len(expected) {
		t.Fatalf("rows, got:\n%s", spew.Sdump(rows))
	}
	for i := range expected {
		for j := range expected[i] {
			if rows[i][j] != expected[i][j] {
				t.Errorf("row %d value %d, got: %q, expected: %q", i, j, rows[i][j], expected[i][j])
			}
		}
	}

	points, labels, err := schema.Extract(rows, "class", []string{"name"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if points[0].Target != "a,b" || len(labels) != 3 {
		t.Errorf("extract, got:\n%s", spew.Sdump(points, labels))
	}
}
