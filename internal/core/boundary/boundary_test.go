package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docsplit/constants"
	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/core/segment"
	"github.com/joseph-ayodele/docsplit/internal/entity"
	"github.com/joseph-ayodele/docsplit/internal/registry"
)

func pages(texts ...string) []entity.PageWindow {
	return segment.FromPages(texts)
}

func TestDetect(t *testing.T) {
	reg := registry.Default()
	tests := []struct {
		name  string
		pages []entity.PageWindow
		want  []entity.Boundary
	}{
		{
			name:  "three documents back to back",
			pages: pages("PROMISSORY NOTE", "terms continue", "DEED OF TRUST", "legal text", "Closing Disclosure"),
			want: []entity.Boundary{
				{StartPage: 0, EndPage: 1, TypeID: constants.PromissoryNote, Category: constants.CategoryLoan, Title: "Promissory Note"},
				{StartPage: 2, EndPage: 3, TypeID: constants.DeedOfTrust, Category: constants.CategoryLegal, Title: "Deed of Trust"},
				{StartPage: 4, EndPage: 4, TypeID: constants.ClosingDisclosure, Category: constants.CategoryFinancial, Title: "Closing Disclosure"},
			},
		},
		{
			name:  "same type again does not split",
			pages: pages("promissory note", "promise to pay", "promissory note page 3"),
			want: []entity.Boundary{
				{StartPage: 0, EndPage: 2, TypeID: constants.PromissoryNote, Category: constants.CategoryLoan, Title: "Promissory Note"},
			},
		},
		{
			name:  "untyped leading pages join the first document",
			pages: pages("cover sheet", "fax header", "credit report", "more"),
			want: []entity.Boundary{
				{StartPage: 0, EndPage: 3, TypeID: constants.CreditReport, Category: constants.CategoryFinancial, Title: "Credit Report"},
			},
		},
		{
			name:  "stray phrase flips the type greedily",
			pages: pages("deed of trust", "see the credit report", "deed of trust rider"),
			want: []entity.Boundary{
				{StartPage: 0, EndPage: 0, TypeID: constants.DeedOfTrust, Category: constants.CategoryLegal, Title: "Deed of Trust"},
				{StartPage: 1, EndPage: 1, TypeID: constants.CreditReport, Category: constants.CategoryFinancial, Title: "Credit Report"},
				{StartPage: 2, EndPage: 2, TypeID: constants.DeedOfTrust, Category: constants.CategoryLegal, Title: "Deed of Trust"},
			},
		},
		{
			name:  "no triggers",
			pages: pages("lorem", "ipsum", "dolor"),
			want: []entity.Boundary{
				{StartPage: 0, EndPage: 2, TypeID: constants.GeneralDocument, Category: constants.CategoryMisc, Title: "General Document"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.pages, reg)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, Validate(got, len(tt.pages)))
		})
	}
}

func TestDetect_FirstRegisteredTypeWinsOnAPage(t *testing.T) {
	// Promissory note is declared before deed of trust.
	got := Detect(pages("deed of trust securing this promissory note"), registry.Default())
	require.Len(t, got, 1)
	assert.Equal(t, constants.PromissoryNote, got[0].TypeID)
}

func TestDetect_PartitionProperty(t *testing.T) {
	reg := registry.Default()
	vocab := []string{"lorem", "promissory note", "deed of trust", "credit score", "ipsum", "appraisal report", "w-2"}
	for n := 1; n <= 12; n++ {
		for seed := 0; seed < len(vocab); seed++ {
			texts := make([]string, n)
			for i := range texts {
				texts[i] = vocab[(i*seed+i/2+seed)%len(vocab)]
			}
			bs := Detect(pages(texts...), reg)
			require.NotEmpty(t, bs)
			assert.Equal(t, 0, bs[0].StartPage)
			for i := 1; i < len(bs); i++ {
				assert.Equal(t, bs[i-1].EndPage+1, bs[i].StartPage)
				assert.NotEqual(t, bs[i-1].TypeID, bs[i].TypeID, "adjacent boundaries differ in type")
			}
			assert.Equal(t, n-1, bs[len(bs)-1].EndPage)
		}
	}
}

func TestDetect_Empty(t *testing.T) {
	assert.Nil(t, Detect(nil, registry.Default()))
}

func TestWhole(t *testing.T) {
	b := Whole(7)
	assert.Equal(t, 0, b.StartPage)
	assert.Equal(t, 6, b.EndPage)
	assert.Equal(t, constants.GeneralDocument, b.TypeID)
}

func TestValidate(t *testing.T) {
	ok := []entity.Boundary{{StartPage: 0, EndPage: 1}, {StartPage: 2, EndPage: 4}}
	assert.NoError(t, Validate(ok, 5))

	tests := []struct {
		name  string
		bs    []entity.Boundary
		pages int
	}{
		{"no boundaries", nil, 3},
		{"no pages", ok, 0},
		{"gap", []entity.Boundary{{StartPage: 0, EndPage: 1}, {StartPage: 3, EndPage: 4}}, 5},
		{"overlap", []entity.Boundary{{StartPage: 0, EndPage: 2}, {StartPage: 2, EndPage: 4}}, 5},
		{"inverted", []entity.Boundary{{StartPage: 0, EndPage: -1}}, 1},
		{"short", ok, 6},
		{"not from zero", []entity.Boundary{{StartPage: 1, EndPage: 4}}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tt.bs, tt.pages), common.ErrInvalidBoundaries)
		})
	}
}
