package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docsplit/constants"
	"github.com/joseph-ayodele/docsplit/internal/registry"
)

const loremIpsum = `Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod
tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam,
quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat.`

func TestClassify_PromissoryNote(t *testing.T) {
	c := New(registry.Default()).Classify("This PROMISSORY NOTE is made on March 3, 2024.")

	assert.Equal(t, constants.PromissoryNote, c.TypeID)
	assert.Equal(t, constants.CategoryLoan, c.Category)
	assert.Greater(t, c.Confidence, AcceptanceThreshold)
	assert.InDelta(t, 1/(4*DampeningFactor), c.Confidence, 1e-9)
	assert.Contains(t, c.ExtractionFields, "interest_rate")
}

func TestClassify_NoMatchFallsBack(t *testing.T) {
	c := New(registry.Default()).Classify(loremIpsum)

	assert.Equal(t, constants.GenericDocument, c.TypeID)
	assert.Equal(t, constants.CategoryMisc, c.Category)
	assert.Equal(t, FallbackConfidence, c.Confidence)
	assert.Empty(t, c.ExtractionFields)
	assert.True(t, c.IsFallback())
}

func TestClassify_BelowThreshold(t *testing.T) {
	// One hit out of eight credit report phrases is 1/5.6, under the threshold.
	c := New(registry.Default()).Classify("see the attached credit report")
	assert.Equal(t, constants.GenericDocument, c.TypeID)
}

func TestRank_ConfidenceBounds(t *testing.T) {
	texts := []string{
		"",
		loremIpsum,
		"credit report credit report credit score fico fico transunion experian equifax inquiries payment history",
		"deed of trust; security instrument; power of sale; closing disclosure; loan terms",
	}
	cl := New(registry.Default())
	for _, text := range texts {
		ranked := cl.Rank(text)
		require.Len(t, ranked, registry.Default().Len())
		for i, c := range ranked {
			assert.GreaterOrEqual(t, c.Confidence, 0.0)
			assert.LessOrEqual(t, c.Confidence, 1.0)
			if i > 0 {
				assert.GreaterOrEqual(t, ranked[i-1].Confidence, c.Confidence, "ranked descending")
			}
		}
	}
}

func TestRank_SaturatesAtOne(t *testing.T) {
	ranked := New(registry.Default()).Rank("promissory note promissory note promissory note promissory note")
	assert.Equal(t, constants.PromissoryNote, ranked[0].TypeID)
	assert.Equal(t, 1.0, ranked[0].Confidence)
}

func TestRank_TiesKeepRegistryOrder(t *testing.T) {
	reg := registry.MustNew([]registry.Definition{
		{TypeID: constants.TitleReport, Category: constants.CategoryLegal, Title: "Title", Patterns: []string{"shared phrase", "title only"}},
		{TypeID: constants.EscrowAgreement, Category: constants.CategoryFinancial, Title: "Escrow", Patterns: []string{"shared phrase", "escrow only"}},
	})
	cl := New(reg)

	ranked := cl.Rank("a shared phrase")
	require.Len(t, ranked, 2)
	assert.Equal(t, ranked[0].Confidence, ranked[1].Confidence)
	assert.Equal(t, constants.TitleReport, ranked[0].TypeID)
	assert.Equal(t, constants.TitleReport, cl.Classify("a shared phrase").TypeID)

	assert.Equal(t, constants.EscrowAgreement, cl.Classify("shared phrase and escrow only").TypeID)
}

func TestCountMatches(t *testing.T) {
	assert.Equal(t, 3, CountMatches("fico fico and fico", []string{"fico"}))
	assert.Equal(t, 2, CountMatches("a credit score and a fico", []string{"credit score", "fico", "equifax"}))
	assert.Equal(t, 0, CountMatches("anything", []string{""}))
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 0.0, Confidence(0, 5))
	assert.Equal(t, 0.0, Confidence(3, 0))
	assert.InDelta(t, 2/(6*0.7), Confidence(2, 6), 1e-12)
	assert.Equal(t, 1.0, Confidence(10, 6))
}
