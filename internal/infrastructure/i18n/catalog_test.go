package i18n

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mannequin/internal/domain/valueobjects"
)

func TestLoad_TablesShareKeys(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	en := sortedKeys(c.Set(valueobjects.English))
	fa := sortedKeys(c.Set(valueobjects.Persian))
	if diff := cmp.Diff(en, fa); diff != "" {
		t.Fatalf("translation keys differ (-en +fa):\n%s", diff)
	}
	assert.Equal(t, en, c.Keys())
}

func TestCatalog_EveryLabelIsTranslated(t *testing.T) {
	c := MustLoad()
	en := c.Set(valueobjects.English)
	fa := c.Set(valueobjects.Persian)

	for _, key := range c.Keys() {
		assert.NotEmpty(t, en[key], "english %s", key)
		assert.NotEmpty(t, fa[key], "persian %s", key)
		if key == "footer" || key == "howToRunStep3" {
			continue
		}
		assert.NotEqual(t, en[key], fa[key], "key %s is not translated", key)
	}
}

func TestCatalog_RequiredKeys(t *testing.T) {
	c := MustLoad()
	required := []string{
		"title", "tagline", "step1Title", "step1Description", "step2Title", "step2Description",
		"uploadModel", "uploadClothing", "dropOrClick", "changeImage", "generateButton",
		"generating", "resultTitle", "errorTitle", "errorDescription", "startOverButton",
		"howToRunTitle", "howToRunDescription", "howToRunStep1", "howToRunStep2",
		"howToRunStep3", "howToRunStep4", "howToRunStep5",
	}
	for _, key := range required {
		_, ok := c.Set(valueobjects.English)[key]
		assert.True(t, ok, "missing key %s", key)
	}
}

func TestCatalog_SwitchAndBack(t *testing.T) {
	c := MustLoad()

	first := c.Set(valueobjects.English)
	persian := c.Set(valueobjects.Persian)
	back := c.Set(valueobjects.English)

	assert.Equal(t, "Generate", first.T("generateButton"))
	assert.Equal(t, "تولید تصویر", persian.T("generateButton"))
	if diff := cmp.Diff(first, back); diff != "" {
		t.Fatalf("switching back changed the english table:\n%s", diff)
	}
}

func TestCatalog_UnknownLanguageFallsBack(t *testing.T) {
	c := MustLoad()
	assert.Equal(t, c.Set(valueobjects.English), c.Set("de"))
}

func TestTranslationSet_MissingKey(t *testing.T) {
	set := TranslationSet{"a": "b"}
	assert.Equal(t, "b", set.T("a"))
	assert.Equal(t, "nope", set.T("nope"))
}
