package sponsor

import (
	"reflect"
	"testing"

	"github.com/schneegans/sponsorwall/pkg/errors"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		aliases AliasTable
		want    Records
	}{
		{
			name: "sums duplicates and sorts descending",
			records: []Record{
				{Name: "Alice", Total: 120},
				{Name: "Bob", Total: 80},
				{Name: "Alice", Total: 30},
			},
			want: Records{
				{Name: "Alice", Total: 150},
				{Name: "Bob", Total: 80},
			},
		},
		{
			name: "resolves aliases before grouping",
			records: []Record{
				{Name: "DonHopkins", Total: 5, Link: "https://github.com/DonHopkins"},
				{Name: "Don Hopkins", Total: 10, Avatar: "don.png"},
			},
			aliases: AliasTable{"DonHopkins": "Don Hopkins"},
			want: Records{
				{Name: "Don Hopkins", Total: 15, Link: "https://github.com/DonHopkins", Avatar: "don.png"},
			},
		},
		{
			name: "first non-empty link and avatar win",
			records: []Record{
				{Name: "Carol", Total: 1, Link: "https://github.com/carol", Avatar: "gh.png"},
				{Name: "Carol", Total: 1, Link: "https://ko-fi.com/carol", Avatar: "kofi.png"},
				{Name: "Dave", Total: 1},
				{Name: "Dave", Total: 1, Link: "https://paypal.me/dave", Avatar: "pp.png"},
			},
			want: Records{
				{Name: "Carol", Total: 2, Link: "https://github.com/carol", Avatar: "gh.png"},
				{Name: "Dave", Total: 2, Link: "https://paypal.me/dave", Avatar: "pp.png"},
			},
		},
		{
			name:    "empty input",
			records: nil,
			want:    Records{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.records, tt.aliases)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMergeIdempotent(t *testing.T) {
	records := []Record{
		{Name: "AJCxZ0", Total: 20, Avatar: "a.png"},
		{Name: "Bob", Total: 7},
		{Name: "Andrew J. Caines", Total: 3, Link: "https://github.com/AJCxZ0"},
		{Name: "Bob", Total: 13, Avatar: "b.png"},
		{Name: "Eve", Total: 20},
	}
	aliases := AliasTable{"AJCxZ0": "Andrew J. Caines"}

	once := Merge(records, aliases)
	twice := Merge(once, aliases)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Merge is not idempotent:\nonce  = %+v\ntwice = %+v", once, twice)
	}

	seen := map[string]bool{}
	for _, r := range once {
		if seen[r.Name] {
			t.Errorf("name %q appears twice after merge", r.Name)
		}
		seen[r.Name] = true
	}
}

func TestMergeStableTies(t *testing.T) {
	got := Merge([]Record{{Name: "B", Total: 5}, {Name: "A", Total: 5}, {Name: "C", Total: 9}}, nil)
	names := []string{got[0].Name, got[1].Name, got[2].Name}
	if want := []string{"C", "B", "A"}; !reflect.DeepEqual(names, want) {
		t.Errorf("order = %v, want %v", names, want)
	}
}

func TestRecordsValidate(t *testing.T) {
	ok := Records{{Name: "A", Total: 5, Avatar: "a.png"}, {Name: "Zero", Total: 0}}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	bad := Records{{Name: "A", Total: 5}}
	err := bad.Validate()
	if !errors.Is(err, errors.ErrCodeMissingAvatar) {
		t.Errorf("Validate() error = %v, want %s", err, errors.ErrCodeMissingAvatar)
	}
}

func TestAliasTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		aliases AliasTable
		wantErr bool
	}{
		{"valid", AliasTable{"DR_TS": "denis-roy", "James Vega": "D3vil0p3r"}, false},
		{"empty", AliasTable{}, false},
		{"self", AliasTable{"a": "a"}, true},
		{"chain", AliasTable{"a": "b", "b": "c"}, true},
		{"empty target", AliasTable{"a": ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.aliases.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordsTotal(t *testing.T) {
	rs := Records{{Total: 1.5}, {Total: 2.5}}
	if got := rs.Total(); got != 4 {
		t.Errorf("Total() = %v, want 4", got)
	}
}
