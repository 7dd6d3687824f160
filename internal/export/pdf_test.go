package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/franciscosanchezn/gin-menu-api/internal/menu"
	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finalized(id string, category models.Category, order int) models.MenuItem {
	return models.MenuItem{
		ID:              id,
		Name:            "Dish " + id,
		Category:        category,
		DisplayOrder:    order,
		GeneratedImages: []string{"https://cdn.example.com/" + id + ".jpg"},
	}
}

func uncompressedRenderer() *PDFRenderer {
	r := NewPDFRenderer()
	r.Compress = false
	return r
}

func TestRenderEmptyMenu(t *testing.T) {
	doc, err := NewPDFRenderer().Render(menu.View{})

	assert.ErrorIs(t, err, ErrEmptyMenu)
	assert.Nil(t, doc)
}

func TestRenderSinglePage(t *testing.T) {
	item := finalized("1", models.CategoryMains, 0)
	item.Price = decimal.NewNullDecimal(decimal.RequireFromString("42.5"))
	item.Description = "Slow cooked lamb shoulder with saffron rice"
	item.DietaryInfo = []models.DietaryOption{models.DietaryGlutenFree, models.DietarySpicy}

	doc, err := uncompressedRenderer().Render(menu.BuildView([]models.MenuItem{item}))

	require.NoError(t, err)
	assert.Equal(t, 1, doc.Pages)
	assert.Equal(t, []string{"Page 1 of 1"}, doc.Footers)
	assert.True(t, bytes.HasPrefix(doc.Bytes, []byte("%PDF-")))

	content := string(doc.Bytes)
	assert.Contains(t, content, "(Menu)")
	assert.Contains(t, content, "(Mains)")
	assert.Contains(t, content, "(Dish 1)")
	assert.Contains(t, content, "(AED 42.50)")
	assert.Contains(t, content, "(Gluten-Free, Spicy)")
	assert.Contains(t, content, "(Page 1 of 1)")
}

func TestRenderOmitsMissingPrice(t *testing.T) {
	doc, err := uncompressedRenderer().Render(menu.BuildView([]models.MenuItem{finalized("1", models.CategorySoups, 0)}))

	require.NoError(t, err)
	assert.NotContains(t, string(doc.Bytes), "AED")
}

func TestRenderPaginatesLongMenu(t *testing.T) {
	var items []models.MenuItem
	for i := 0; i < 40; i++ {
		item := finalized(fmt.Sprintf("%02d", i), models.CanonicalCategories[i%len(models.CanonicalCategories)], i)
		item.Description = strings.Repeat("Fragrant basmati, charred vegetables and herbs. ", 3)
		item.DietaryInfo = []models.DietaryOption{models.DietaryVegetarian}
		items = append(items, item)
	}

	doc, err := uncompressedRenderer().Render(menu.BuildView(items))

	require.NoError(t, err)
	require.Greater(t, doc.Pages, 1)
	require.Len(t, doc.Footers, doc.Pages)

	content := string(doc.Bytes)
	for i := 1; i <= doc.Pages; i++ {
		footer := fmt.Sprintf("Page %d of %d", i, doc.Pages)
		assert.Equal(t, footer, doc.Footers[i-1])
		assert.Contains(t, content, "("+footer+")")
	}
	assert.NotContains(t, content, nbPagesAlias, "page count alias must be substituted")
}

func TestRenderTranslatesNonASCII(t *testing.T) {
	item := finalized("1", models.CategoryDesserts, 0)
	item.Name = "Crème brûlée"

	doc, err := NewPDFRenderer().Render(menu.BuildView([]models.MenuItem{item}))

	require.NoError(t, err)
	assert.Equal(t, 1, doc.Pages)
	assert.NotEmpty(t, doc.Bytes)
}

var textRun = regexp.MustCompile(`BT (-?[\d.]+) (-?[\d.]+) Td \((.*?)\) Tj ET`)

// baselines returns the text runs of an uncompressed document with their baseline in mm from the page bottom
func baselines(t *testing.T, content []byte) map[string][]float64 {
	const ptPerMM = 72.0 / 25.4
	runs := make(map[string][]float64)
	for _, m := range textRun.FindAllSubmatch(content, -1) {
		y, err := strconv.ParseFloat(string(m[2]), 64)
		require.NoError(t, err)
		runs[string(m[3])] = append(runs[string(m[3])], y/ptPerMM)
	}
	return runs
}

func TestRenderKeepsTextAboveFooter(t *testing.T) {
	var items []models.MenuItem
	for i := 0; i < 6; i++ {
		item := finalized(fmt.Sprintf("%02d", i), models.CategoryMains, i)
		item.DietaryInfo = []models.DietaryOption{models.DietaryVegan}
		if i%2 == 0 {
			item.Description = strings.Repeat("Charred aubergine with pomegranate and tahini. ", 150) + fmt.Sprintf("Closing%02d", i)
		}
		items = append(items, item)
	}

	doc, err := uncompressedRenderer().Render(menu.BuildView(items))
	require.NoError(t, err)

	runs := baselines(t, doc.Bytes)
	require.NotEmpty(t, runs)
	for text, ys := range runs {
		for _, y := range ys {
			if strings.HasPrefix(text, "Page ") {
				assert.InDelta(t, footerFromBottom, y, 0.01)
				continue
			}
			assert.GreaterOrEqual(t, y, bottomReserve-0.01, "%q is drawn over the footer", text)
		}
	}

	// long descriptions continue on the next page instead of being lost
	for i := 0; i < 6; i += 2 {
		assert.Contains(t, string(doc.Bytes), fmt.Sprintf("Closing%02d", i))
	}
	assert.Len(t, runs["Vegan"], 6)
}

var contentStream = regexp.MustCompile(`(?s)stream\n(.*?)endstream`)

func TestRenderMovesItemThatDoesNotFit(t *testing.T) {
	var items []models.MenuItem
	for i := 0; i < 12; i++ {
		item := finalized(fmt.Sprintf("%02d", i), models.CategoryMains, i)
		item.Description = strings.Repeat("Slow roasted lamb, rice and nuts. ", 10)
		items = append(items, item)
	}

	doc, err := uncompressedRenderer().Render(menu.BuildView(items))
	require.NoError(t, err)
	require.Greater(t, doc.Pages, 1)

	// every page opens with a heading or a dish name, never with the tail of a description
	var firsts []string
	for _, stream := range contentStream.FindAllSubmatch(doc.Bytes, -1) {
		run := textRun.FindSubmatch(stream[1])
		if run == nil {
			continue
		}
		firsts = append(firsts, string(run[3]))
	}
	require.Len(t, firsts, doc.Pages)
	assert.Equal(t, "Menu", firsts[0])
	for _, first := range firsts[1:] {
		assert.True(t, strings.HasPrefix(first, "Dish "), "page starts with %q", first)
	}
}
